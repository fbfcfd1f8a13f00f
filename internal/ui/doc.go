// Package ui provides the terminal chat panel built on Bubble Tea.
//
// # Layout
//
// From top to bottom the panel shows:
//
//   - Header: title, current message limit and the watched file
//   - Chat box: a scrollable viewport with highlighted chat lines
//   - Load prompt: shown while entering a chat file path
//   - Send bar: toggled with "s", writes the outgoing message file
//   - Footer: short key help
//
// # Event Flow
//
//  1. Run() starts the program with the alt screen
//  2. A tea.Tick message runs viewer.Tick on the update loop every poll interval
//  3. An optional watch.Notifier delivers early nudges that do the same check
//  4. The viewport content is only rebuilt when the viewer re-rendered
//  5. Context cancellation cleanly shuts down the UI
//
// All viewer state is touched from Update only, so no locking is needed.
//
// # Key Bindings
//
//   - l/o: Load a chat file
//   - +/-: Show more or fewer messages
//   - j/k, g/G, pgup/pgdown: Scroll
//   - s: Toggle the send bar (enter sends, esc closes, ctrl+r opens the folder)
//   - r: Open the output folder
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
