// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/pants-project/pants/lib/passgen"
)

// EnvironmentVariable names the configuration file when --config is
// not given.
const EnvironmentVariable = "PANTS_CONFIG"

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeMono  = "mono"
)

// Themes lists the theme names in cycling order.
func Themes() []string {
	return []string{ThemeDark, ThemeLight, ThemeMono}
}

// NextTheme returns the theme after name, wrapping around. An unknown
// name yields the first theme.
func NextTheme(name string) string {
	themes := Themes()
	index := slices.Index(themes, name)
	return themes[(index+1)%len(themes)]
}

// Config is the client configuration.
type Config struct {
	// SocketPath is the unix socket of the vault store as written,
	// with ${VAR} and ${VAR:-default} references unexpanded. Dial
	// [Config.ResolvedSocketPath].
	SocketPath string `yaml:"socket_path" json:"socket_path"`

	// ClipboardSeconds is how long a copied password stays on the
	// clipboard before the previous contents are put back.
	ClipboardSeconds int `yaml:"clipboard_seconds" json:"clipboard_seconds"`

	// Theme is one of [Themes].
	Theme string `yaml:"theme" json:"theme"`

	// Password controls generated passwords.
	Password passgen.Policy `yaml:"password" json:"password"`

	// path is the file this configuration was loaded from. Empty for
	// [Default].
	path string

	// document is the file's top-level mapping as read, so Save can
	// keep keys it did not change and keys it does not know.
	document map[string]any
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SocketPath:       "${XDG_RUNTIME_DIR:-/tmp}/pants/store.sock",
		ClipboardSeconds: 30,
		Theme:            ThemeDark,
		Password:         passgen.DefaultPolicy(),
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// ResolvedSocketPath returns SocketPath with environment references
// expanded.
func (c *Config) ResolvedSocketPath() string {
	return expandVars(c.SocketPath)
}

// ClipboardDelay returns ClipboardSeconds as a duration.
func (c *Config) ClipboardDelay() time.Duration {
	return time.Duration(c.ClipboardSeconds) * time.Second
}

// Load reads the file named by PANTS_CONFIG. It fails when the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; set it to the path of your pants.yaml, or use --config", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if isJSON(path) {
		data = jsonc.ToJSON(data)
	}

	config := Default()
	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	// JSON is YAML, so one decoder reads the document of either format.
	if err := yaml.Unmarshal(data, &config.document); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	config.path = path
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Save writes the configuration back to the file it was loaded from,
// in that file's format. Keys the file already had are rewritten with
// their current values; other fields are added only when they differ
// from [Default]. A default configuration has no file and Save fails.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("configuration was not loaded from a file")
	}

	current, err := fieldMap(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	defaults, err := fieldMap(Default())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	document := maps.Clone(c.document)
	if document == nil {
		document = make(map[string]any)
	}
	for key, value := range current {
		if _, present := document[key]; present || !reflect.DeepEqual(value, defaults[key]) {
			document[key] = value
		}
	}

	var data []byte
	if isJSON(c.path) {
		data, err = json.MarshalIndent(document, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(document)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	c.document = document
	return nil
}

// fieldMap renders the exported fields as the generic mapping the
// file decodes to.
func fieldMap(c *Config) (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.ResolvedSocketPath() == "" {
		errs = append(errs, errors.New("socket_path is required"))
	}
	if c.ClipboardSeconds <= 0 {
		errs = append(errs, fmt.Errorf("clipboard_seconds must be positive, got %d", c.ClipboardSeconds))
	}
	if !slices.Contains(Themes(), c.Theme) {
		errs = append(errs, fmt.Errorf("theme must be one of %v, got %q", Themes(), c.Theme))
	}
	if err := c.Password.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("password: %w", err))
	}
	return errors.Join(errs...)
}

func isJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default} with environment
// values.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
