package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/five82/chatdock/internal/config"
	"github.com/five82/chatdock/internal/outbox"
	"github.com/five82/chatdock/internal/settings"
	"github.com/five82/chatdock/internal/ui"
	"github.com/five82/chatdock/internal/viewer"
	"github.com/five82/chatdock/internal/watch"
)

// Options configure the chatdock application.
type Options struct {
	ConfigPath string
	File       string        // chat file to load instead of the stored session
	PollEvery  time.Duration // zero uses the configured interval
}

// Run boots the chat panel until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	fs := afero.NewOsFs()
	v := viewer.New(fs, store, logger)
	v.Restore()
	if opts.File != "" {
		_ = v.Load(opts.File) // Shown in the panel
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	notifier := startNotifier(cfg, logger)
	if notifier != nil {
		defer func() { _ = notifier.Close() }()
	}

	logger.Info("chatdock starting",
		"output", cfg.OutputPath(),
		"poll", interval,
		"notify", notifier != nil,
		"settings", store.Path(),
	)

	uiOpts := ui.Options{
		Viewer:    v,
		Outbox:    outbox.New(fs, cfg.OutputPath()),
		Store:     store,
		Notifier:  notifier,
		Logger:    logger,
		PollTick:  interval,
		ThemeName: themeName(cfg, store),
	}
	err = ui.Run(ctx, uiOpts)
	logger.Info("chatdock stopped", "error", err)
	return err
}

// themeName prefers the theme last cycled in the panel over the configured one.
func themeName(cfg config.Config, store settings.Store) string {
	if name, ok := store.Read(settings.ThemeKey); ok && name != "" {
		return name
	}
	return cfg.Theme
}

func startNotifier(cfg config.Config, logger *slog.Logger) *watch.Notifier {
	if !cfg.Notify {
		return nil
	}
	n, err := watch.NewNotifier()
	if err != nil {
		// Polling still works without it
		logger.Warn("fsnotify unavailable", "error", err)
		return nil
	}
	return n
}
