package ui

import "time"

// Panel chrome heights, in rows.
const (
	headerHeight = 1
	borderHeight = 2
	footerHeight = 1
	inputHeight  = 1
)

// Input limits.
const (
	// MessageCharLimit caps the outgoing message length.
	MessageCharLimit = 2000

	// PathCharLimit caps the load prompt.
	PathCharLimit = 1024
)

// Timing constants.
const (
	// DefaultWatchInterval is used when Options.PollTick is zero.
	DefaultWatchInterval = 3 * time.Second
)

// timeLayout formats the tracked file's modification time in the header.
const timeLayout = "15:04:05"

// Placeholder is shown while nothing has been loaded.
const Placeholder = "Chat will appear here..."
