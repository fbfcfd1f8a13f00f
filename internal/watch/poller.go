// Package watch detects external rewrites of the chat file.
//
// The Poller is a two-state machine (Idle, Tracking) driven by the caller's
// ticks; it never starts goroutines of its own. The Notifier is an optional
// fsnotify-backed nudge that lets the caller tick early.
package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

// State is the poller's tracking state.
type State int

const (
	Idle State = iota
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "idle"
}

// WatchError reports a failed modification-time read. The poller never
// surfaces it; it is only logged.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error {
	return e.Err
}

// Poller compares the tracked file's modification time on every Check.
type Poller struct {
	fs      afero.Fs
	logger  *slog.Logger
	state   State
	path    string
	modTime time.Time
}

// NewPoller returns an idle poller reading metadata through fs.
func NewPoller(fs afero.Fs, logger *slog.Logger) *Poller {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{fs: fs, logger: logger}
}

// Track starts tracking path as of modTime. Called after a successful load.
func (p *Poller) Track(path string, modTime time.Time) {
	p.state = Tracking
	p.path = path
	p.modTime = modTime
}

// State returns the current state.
func (p *Poller) State() State {
	return p.state
}

// Path returns the tracked path, empty while idle.
func (p *Poller) Path() string {
	return p.path
}

// ModTime returns the last seen modification time.
func (p *Poller) ModTime() time.Time {
	return p.modTime
}

// Check reports whether the tracked file changed since the last Check or
// Track. The new modification time is recorded before returning true, so a
// file that fails to parse is not re-read on every tick.
func (p *Poller) Check() bool {
	if p.state != Tracking {
		return false
	}
	info, err := p.fs.Stat(p.path)
	if err != nil {
		p.logger.Debug("watch tick skipped", "error", &WatchError{Path: p.path, Err: err})
		return false
	}
	if info.ModTime().Equal(p.modTime) {
		return false
	}
	p.modTime = info.ModTime()
	return true
}
