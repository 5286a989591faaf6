// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the Pants client configuration.
//
// The configuration comes from exactly one file: the path given with
// --config (via [LoadFile]) or the PANTS_CONFIG environment variable
// (via [Load]). There is no search of ~/.config or the working
// directory. Without either, callers run on [Default].
//
// Files are YAML. A path ending in .json or .jsonc is read as JSON with
// comments and trailing commas allowed. Path fields expand ${HOME} and
// ${VAR:-default} after loading; no environment variable overrides a
// value set in the file.
//
// [Config.Save] writes the configuration back to the file it came
// from, which is how a theme picked in the UI persists.
package config
