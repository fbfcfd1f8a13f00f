// Package app provides the orchestration layer for chatdock.
//
// # Overview
//
// This package wires together configuration, logging, the settings store, the
// viewer and the UI. It serves as the composition root where all dependencies
// are initialized and connected.
//
// # Startup
//
//  1. Load config from ~/.config/chatdock/config.toml (defaults when missing)
//  2. Open the slog text log at cfg.LogFile
//  3. Open the settings store and restore the last session
//  4. Load the --file argument, when given, as an explicit load
//  5. Start the optional fsnotify notifier
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read chatdock config
//	       ├─────> openLogger()       Log file handler
//	       ├─────> settings.Open()    Session and theme store
//	       ├─────> viewer.Restore()   Last file and limit
//	       └─────> ui.Run()           Start TUI (blocks)
//
// Polling happens on the UI update loop through tea.Tick, so viewer state is
// only ever touched from one goroutine.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file or failed validation
//   - Log file cannot be created
//
// Everything else is shown in the panel or logged:
//   - Unreadable or malformed chat files render an ERROR line
//   - Send and reveal failures are logged at warn level
//   - Stat failures while watching are logged at debug level
//
// # Headless Commands
//
// Render, Send and Reveal back the CLI subcommands of the same name and use
// the same config as the panel.
package app
