package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/chatdock/internal/pathutil"
	"github.com/five82/chatdock/internal/settings"
)

// Config captures everything chatdock reads at startup.
type Config struct {
	OutputDir    string        `validate:"required"`
	OutputName   string        `validate:"required,excludesall=/"`
	PollInterval time.Duration `validate:"min=100ms"`
	Notify       bool
	Theme        string
	LogFile      string `validate:"required"`
	SettingsPath string `validate:"required"`
}

const (
	defaultConfigPath   = "~/.config/chatdock/config.toml"
	defaultOutputName   = "krita_chat_output.json"
	defaultPollInterval = 3 * time.Second
	defaultLogFile      = "~/.local/state/chatdock/chatdock.log"
)

// envOverrides are read from CHATDOCK_* variables and win over the file.
type envOverrides struct {
	OutputDir    string        `envconfig:"OUTPUT_DIR"`
	OutputName   string        `envconfig:"OUTPUT_NAME"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL"`
	Notify       *bool         `envconfig:"NOTIFY"`
	Theme        string        `envconfig:"THEME"`
	LogFile      string        `envconfig:"LOG_FILE"`
}

var validate = validator.New()

// Load locates and parses the chatdock config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := pathutil.Resolve(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := applyFile(&cfg, file); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.OutputDir = pathutil.ExpandOr(cfg.OutputDir)
	cfg.LogFile = pathutil.ExpandOr(cfg.LogFile)
	cfg.SettingsPath = pathutil.ExpandOr(cfg.SettingsPath)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the configuration used without a config file.
func Defaults() Config {
	return Config{
		OutputDir:    executableDir(),
		OutputName:   defaultOutputName,
		PollInterval: defaultPollInterval,
		LogFile:      defaultLogFile,
		SettingsPath: settings.DefaultPath(),
	}
}

// OutputPath returns the full path of the outgoing message file.
func (c Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputName)
}

func applyFile(cfg *Config, r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		OutputDir    string `toml:"output_dir"`
		OutputName   string `toml:"output_name"`
		PollInterval string `toml:"poll_interval"`
		Notify       bool   `toml:"notify"`
		Theme        string `toml:"theme"`
		LogFile      string `toml:"log_file"`
		SettingsPath string `toml:"settings_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.OutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(raw.OutputName); v != "" {
		cfg.OutputName = v
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	cfg.Notify = raw.Notify
	cfg.Theme = strings.TrimSpace(raw.Theme)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(raw.SettingsPath); v != "" {
		cfg.SettingsPath = v
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("chatdock", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(env.OutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(env.OutputName); v != "" {
		cfg.OutputName = v
	}
	if env.PollInterval > 0 {
		cfg.PollInterval = env.PollInterval
	}
	if env.Notify != nil {
		cfg.Notify = *env.Notify
	}
	if v := strings.TrimSpace(env.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(env.LogFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
