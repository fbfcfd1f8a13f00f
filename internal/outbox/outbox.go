// Package outbox writes the single outgoing message file and reveals it in
// the platform file manager.
package outbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// Message is the wire shape of the output file.
type Message struct {
	Output string `json:"output"`
}

// Outbox owns the output file at a fixed path.
type Outbox struct {
	fs   afero.Fs
	path string
}

// New returns an outbox writing to path through fs.
func New(fs afero.Fs, path string) *Outbox {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Outbox{fs: fs, path: path}
}

// Path returns the output file path.
func (o *Outbox) Path() string {
	return o.path
}

// Exists reports whether the output file is present.
func (o *Outbox) Exists() bool {
	ok, err := afero.Exists(o.fs, o.path)
	return err == nil && ok
}

// Send overwrites the output file with the trimmed text. It reports false
// without touching the file when the text is blank.
func (o *Outbox) Send(text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	data, err := Encode(text)
	if err != nil {
		return false, err
	}
	if err := afero.WriteFile(o.fs, o.path, data, 0o644); err != nil {
		return false, fmt.Errorf("write output file: %w", err)
	}
	return true, nil
}

// Encode renders the message as 2-space indented JSON with non-ASCII and
// HTML characters left unescaped.
func Encode(text string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Message{Output: text}); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Runner launches an external command without waiting for it.
type Runner func(name string, args ...string) error

// StartDetached is the production Runner.
func StartDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// RevealCommand returns the file-manager invocation for goos. Windows and
// macOS select the file; elsewhere the containing folder is opened.
func RevealCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{"/select," + path}
	case "darwin":
		return "open", []string{"-R", path}
	default:
		return "xdg-open", []string{filepath.Dir(path)}
	}
}

// Reveal opens the output file's folder. It is a no-op when the file does
// not exist yet.
func (o *Outbox) Reveal(run Runner) error {
	if !o.Exists() {
		return nil
	}
	if run == nil {
		run = StartDetached
	}
	name, args := RevealCommand(runtime.GOOS, o.path)
	if err := run(name, args...); err != nil {
		return fmt.Errorf("open folder: %w", err)
	}
	return nil
}
