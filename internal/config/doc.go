// Package config handles loading chatdock's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/chatdock/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. CHATDOCK_* environment variables override file values
//  5. The result is validated; an invalid result is an error
//
// # Default Values
//
//   - Config file: ~/.config/chatdock/config.toml
//   - Output directory: directory of the running executable
//   - Output name: krita_chat_output.json
//   - Poll interval: 3s (minimum 100ms)
//   - Log file: ~/.local/state/chatdock/chatdock.log
//   - Settings store: ~/.config/chatdock/settings.toml
//
// # TOML Format
//
//	output_dir = "~/chat"
//	output_name = "krita_chat_output.json"
//	poll_interval = "3s"
//	notify = true
//	theme = "Slate"
//	log_file = "~/.local/state/chatdock/chatdock.log"
//	settings_path = "~/.config/chatdock/settings.toml"
//
// Every field is optional. Tilde expansion is performed on path fields.
//
// # Environment
//
//   - CHATDOCK_OUTPUT_DIR, CHATDOCK_OUTPUT_NAME
//   - CHATDOCK_POLL_INTERVAL (Go duration string)
//   - CHATDOCK_NOTIFY (bool)
//   - CHATDOCK_THEME, CHATDOCK_LOG_FILE
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and failed validation. A missing config
// file is not an error.
package config
