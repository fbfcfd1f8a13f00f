// Package chatlog turns chat JSON documents into display lines and computes
// highlight spans for them.
//
// # Document Shape
//
// The watched file is written by an external program and looks like:
//
//	{"chat": [["info", "bob", "hello"], ["", "alice", "hi bob"]]}
//
// Each entry is a (role, user, message) triple. Entries with any other arity
// are skipped. A document without a "chat" key, or whose "chat" value is not a
// list, is rejected with a FormatError.
//
// # Windowing
//
// Only the trailing window of the list is shown. The window start is computed
// on the raw list length, before malformed entries are dropped:
//
//	start = max(0, len(chat) - limit)
//
// so a malformed entry inside the window reduces the number of lines rather
// than pulling in an older entry.
//
// # Line Format
//
//	[role] user: message
//	user: message          (role empty)
//
// # Highlighting
//
// Highlight scans a single display row for an optional leading "[tag] " and
// a username ended by the first colon. It returns byte-offset spans in two
// classes, ClassTag and ClassUser. The message text is never highlighted. A
// colon inside the username always ends the username; that ambiguity is kept
// as-is.
//
// All functions in this package are pure and safe for concurrent use.
package chatlog
