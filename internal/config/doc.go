// Package config loads mcmap's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mcmap/config.toml
//  3. If the file doesn't exist, fall back to Default
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	log_level = "info"
//	flags_path = "~/.config/mcmap/flags.toml"
//	recent_location_limit = 15
//	default_game_version = "1.21.3"
//
// Every field is optional. Tilde expansion is applied to the config path
// and to flags_path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors, unknown log levels and a negative
// recent_location_limit. A missing file is not an error.
//
// NewLogger builds the logrus logger the rest of the program shares.
package config
