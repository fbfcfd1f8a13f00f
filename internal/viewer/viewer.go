// Package viewer holds the chat panel's state independent of any UI runtime:
// the loaded file, the message limit, the rendered text and the watch poller.
//
// All methods must be called from a single goroutine (the UI event loop).
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/five82/chatdock/internal/chatlog"
	"github.com/five82/chatdock/internal/settings"
	"github.com/five82/chatdock/internal/watch"
)

// IOError reports an unreadable chat file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Viewer renders the chat file and keeps it fresh.
type Viewer struct {
	fs     afero.Fs
	store  settings.Store
	poller *watch.Poller
	logger *slog.Logger

	limit   int
	path    string
	text    string
	lines   []string
	lastErr error
	renders int
}

// New returns a viewer with the default limit and nothing loaded.
func New(fs afero.Fs, store settings.Store, logger *slog.Logger) *Viewer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Viewer{
		fs:     fs,
		store:  store,
		poller: watch.NewPoller(fs, logger),
		logger: logger,
		limit:  chatlog.DefaultLimit,
	}
}

// Restore applies the stored session: the limit, then the last file if it
// still exists. An existing file that fails to load is still tracked. The
// session is not re-saved.
func (v *Viewer) Restore() {
	session := settings.LoadSession(v.store)
	v.limit = session.MessageLimit
	if session.LastFile == "" || !v.exists(session.LastFile) {
		return
	}
	if err := v.load(session.LastFile, false); err != nil && v.path != session.LastFile {
		// A writer may still be mid-write. Keep the file so the next tick
		// retries it and limit changes keep saving it.
		v.path = session.LastFile
		v.poller.Track(session.LastFile, time.Time{})
	}
}

// Load is an explicit user load. On success the file is tracked and the
// session saved.
func (v *Viewer) Load(path string) error {
	return v.load(path, true)
}

// SetLimit changes the message limit, saves the session and re-renders the
// current file when it still exists. It returns the clamped limit.
func (v *Viewer) SetLimit(limit int) int {
	v.limit = chatlog.ClampLimit(limit)
	v.saveSession()
	if v.path != "" && v.exists(v.path) {
		_ = v.load(v.path, false)
	}
	return v.limit
}

// Tick runs one watch interval and reports whether the text was re-rendered.
func (v *Viewer) Tick() bool {
	if !v.poller.Check() {
		return false
	}
	_ = v.load(v.poller.Path(), false)
	return true
}

// Limit returns the current message limit.
func (v *Viewer) Limit() int { return v.limit }

// Path returns the tracked file, empty until a load succeeds.
func (v *Viewer) Path() string { return v.path }

// Text returns what the panel displays: the joined lines or an error literal.
func (v *Viewer) Text() string { return v.text }

// Lines returns the display lines of the last successful parse.
func (v *Viewer) Lines() []string { return v.lines }

// Err returns the error behind the current text, if any.
func (v *Viewer) Err() error { return v.lastErr }

// Renders counts how many times the text was replaced.
func (v *Viewer) Renders() int { return v.renders }

// Watching returns the poller state.
func (v *Viewer) Watching() watch.State { return v.poller.State() }

// ModTime returns the modification time last seen for the tracked file.
func (v *Viewer) ModTime() time.Time { return v.poller.ModTime() }

func (v *Viewer) load(path string, updateSession bool) error {
	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		return v.fail(&IOError{Op: "read", Path: path, Err: err})
	}

	lines, err := chatlog.Parse(data, v.limit)
	var decodeErr *chatlog.DecodeError
	if errors.As(err, &decodeErr) {
		return v.fail(err)
	}

	if err != nil {
		v.show(chatlog.ErrorText(err), nil, err)
	} else {
		v.show(chatlog.Join(lines), lines, nil)
	}

	info, statErr := v.fs.Stat(path)
	if statErr != nil {
		return v.fail(&IOError{Op: "stat", Path: path, Err: statErr})
	}

	if path != v.path {
		v.logger.Info("tracking chat file", "path", path, "limit", v.limit)
	}
	v.path = path
	v.poller.Track(path, info.ModTime())

	if updateSession {
		v.saveSession()
	}
	return err
}

func (v *Viewer) fail(err error) error {
	v.logger.Warn("chat load failed", "error", err)
	v.show(chatlog.ErrorText(err), nil, err)
	return err
}

func (v *Viewer) show(text string, lines []string, err error) {
	v.text = text
	v.lines = lines
	v.lastErr = err
	v.renders++
}

func (v *Viewer) saveSession() {
	err := settings.SaveSession(v.store, settings.Session{LastFile: v.path, MessageLimit: v.limit})
	if err != nil {
		v.logger.Warn("save session failed", "error", err)
	}
}

func (v *Viewer) exists(path string) bool {
	ok, err := afero.Exists(v.fs, path)
	return err == nil && ok
}
