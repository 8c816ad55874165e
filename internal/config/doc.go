// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for deepchat.
//
// TOML configuration with sensible defaults, environment variable
// overrides, validation, and live reload on file change.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Backend connection settings
//   - ChatConfig: Conversation behavior settings
//   - UIConfig: Theme and layout settings
//   - Watcher: Live reload on config file changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DEEPCHAT_*)
//   - ~/.deepchat/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	serverURL := cfg.Server.URL
//	theme := cfg.UI.Theme
package config
