// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if config.ClipboardDelay() != 30*time.Second {
		t.Errorf("ClipboardDelay() = %v, want 30s", config.ClipboardDelay())
	}
	if config.Path() != "" {
		t.Errorf("Path() = %q, want empty", config.Path())
	}
}

func TestDefaultExpandsRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	if got := Default().ResolvedSocketPath(); got != "/run/user/1000/pants/store.sock" {
		t.Errorf("SocketPath = %q", got)
	}

	t.Setenv("XDG_RUNTIME_DIR", "")
	if got := Default().ResolvedSocketPath(); got != "/tmp/pants/store.sock" {
		t.Errorf("SocketPath without XDG_RUNTIME_DIR = %q", got)
	}
}

func TestLoadRequiresEnvironment(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	_, err := Load()
	if err == nil || !strings.HasPrefix(err.Error(), "PANTS_CONFIG environment variable not set") {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	path := writeConfig(t, "pants.yaml", `
socket_path: ${HOME}/store.sock
clipboard_seconds: 10
theme: light
password:
  length: 12
  lower: true
  digits: true
`)
	t.Setenv(EnvironmentVariable, path)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.SocketPath != "${HOME}/store.sock" {
		t.Errorf("SocketPath = %q, want it unexpanded", config.SocketPath)
	}
	if got := config.ResolvedSocketPath(); got != "/home/ada/store.sock" {
		t.Errorf("ResolvedSocketPath() = %q", got)
	}
	if config.ClipboardDelay() != 10*time.Second || config.Theme != ThemeLight {
		t.Errorf("config = %+v", config)
	}
	if config.Password.Length != 12 || config.Password.Upper || config.Password.Symbols {
		t.Errorf("Password = %+v", config.Password)
	}
	if config.Path() != path {
		t.Errorf("Path() = %q, want %q", config.Path(), path)
	}
}

func TestLoadJSONC(t *testing.T) {
	path := writeConfig(t, "pants.jsonc", `{
  // shorter clipboard lifetime
  "clipboard_seconds": 5,
  "theme": "mono",
}`)
	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if config.ClipboardSeconds != 5 || config.Theme != ThemeMono {
		t.Errorf("config = %+v", config)
	}
	if config.Password.Length != 20 {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "pants.yaml", "clipboard_seconds: 0\ntheme: neon\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile accepted an invalid config")
	}
	for _, want := range []string{"clipboard_seconds", "theme"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty socket", func(c *Config) { c.SocketPath = "" }},
		{"negative clipboard", func(c *Config) { c.ClipboardSeconds = -1 }},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }},
		{"zero password length", func(c *Config) { c.Password.Length = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := Default()
			test.modify(config)
			if err := config.Validate(); err == nil {
				t.Error("Validate() accepted the config")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"pants.yaml", "pants.json"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, "")
			if strings.HasSuffix(name, ".json") {
				if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			config, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			config.Theme = NextTheme(config.Theme)
			if err := config.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}

			reloaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if reloaded.Theme != ThemeLight {
				t.Errorf("Theme = %q after save, want light", reloaded.Theme)
			}
		})
	}
}

func TestSaveKeepsVariablesAndOmitsDefaults(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	for _, name := range []string{"pants.yaml", "pants.jsonc"} {
		t.Run(name, func(t *testing.T) {
			content := "socket_path: ${XDG_RUNTIME_DIR}/pants/store.sock\nextra: kept\n"
			if name == "pants.jsonc" {
				content = `{"socket_path": "${XDG_RUNTIME_DIR}/pants/store.sock", "extra": "kept"}`
			}
			path := writeConfig(t, name, content)

			config, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			config.Theme = ThemeMono
			if err := config.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			saved := string(data)
			for _, want := range []string{"${XDG_RUNTIME_DIR}/pants/store.sock", "mono", "extra", "kept"} {
				if !strings.Contains(saved, want) {
					t.Errorf("saved file lacks %q:\n%s", want, saved)
				}
			}
			for _, unwanted := range []string{"/run/user/1000", "clipboard_seconds", "password"} {
				if strings.Contains(saved, unwanted) {
					t.Errorf("saved file contains %q:\n%s", unwanted, saved)
				}
			}

			reloaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if reloaded.SocketPath != "${XDG_RUNTIME_DIR}/pants/store.sock" {
				t.Errorf("SocketPath = %q after reload", reloaded.SocketPath)
			}
			if got := reloaded.ResolvedSocketPath(); got != "/run/user/1000/pants/store.sock" {
				t.Errorf("ResolvedSocketPath() = %q after reload", got)
			}
			if reloaded.Theme != ThemeMono || reloaded.Password != Default().Password {
				t.Errorf("reloaded = %+v", reloaded)
			}
		})
	}
}

func TestSaveWithoutFile(t *testing.T) {
	if err := Default().Save(); err == nil {
		t.Error("Save() on a default config succeeded")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		ThemeDark:  ThemeLight,
		ThemeLight: ThemeMono,
		ThemeMono:  ThemeDark,
		"unknown":  ThemeDark,
	}
	for from, want := range tests {
		if got := NextTheme(from); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", from, got, want)
		}
	}
}
