package app

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/five82/chatdock/internal/chatlog"
	"github.com/five82/chatdock/internal/config"
	"github.com/five82/chatdock/internal/outbox"
	"github.com/five82/chatdock/internal/ui"
)

// Render prints the chat at path once, highlighted with the named theme.
// Unreadable or malformed files print their error literal and return it.
func Render(fs afero.Fs, w io.Writer, path string, limit int, theme string) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		err = fmt.Errorf("read %s: %w", path, err)
		_, _ = fmt.Fprintln(w, chatlog.ErrorText(err))
		return err
	}
	lines, err := chatlog.Parse(data, limit)
	if err != nil {
		_, _ = fmt.Fprintln(w, chatlog.ErrorText(err))
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(w, ui.HighlightText(chatlog.Join(lines), ui.GetTheme(theme)))
	return err
}

// Send writes text to the configured output file. It reports false when text
// is blank.
func Send(fs afero.Fs, configPath, text string) (bool, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}
	return outbox.New(fs, cfg.OutputPath()).Send(text)
}

// Reveal opens the folder of the configured output file.
func Reveal(fs afero.Fs, configPath string, run outbox.Runner) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return outbox.New(fs, cfg.OutputPath()).Reveal(run)
}
