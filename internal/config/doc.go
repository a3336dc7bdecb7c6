// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for s3cli's user
// configuration. The configuration is a YAML document named by S3CLI_CFG_FILE
// or located in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/s3cli.yaml or $HOME/.config/s3cli.yaml
//   - macOS: $HOME/Library/Application Support/s3cli.yaml
//   - Windows: %APPDATA%/s3cli.yaml
//
// Keys are looked up by dotted path. When Namespace is set to the running
// command, "<command>.<key>" wins over the top-level "<key>".
package config
