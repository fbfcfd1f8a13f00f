// Package settings persists the panel's session between runs.
// Values are stored in ~/.config/chatdock/settings.toml as a flat string table.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/chatdock/internal/chatlog"
	"github.com/five82/chatdock/internal/pathutil"
)

// Store is the key/value settings capability the panel depends on.
type Store interface {
	Read(key string) (string, bool)
	Write(key, value string) error
}

const (
	// SessionKey holds the JSON session blob.
	SessionKey = "chat_viewer_settings"
	// ThemeKey holds the selected theme name.
	ThemeKey = "theme"

	defaultSettingsPath = "~/.config/chatdock/settings.toml"
)

// Session is what the panel restores on startup.
type Session struct {
	LastFile     string `json:"last_file"`
	MessageLimit int    `json:"message_limit"`
}

// DefaultSession returns the session used when nothing valid is stored.
func DefaultSession() Session {
	return Session{MessageLimit: chatlog.DefaultLimit}
}

// LoadSession reads the session blob, falling back to defaults on any error.
func LoadSession(store Store) Session {
	session := DefaultSession()
	if store == nil {
		return session
	}
	raw, ok := store.Read(SessionKey)
	if !ok || strings.TrimSpace(raw) == "" {
		return session
	}

	var blob struct {
		LastFile     string `json:"last_file"`
		MessageLimit *int   `json:"message_limit"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return session // Graceful degradation
	}
	session.LastFile = blob.LastFile
	if blob.MessageLimit != nil {
		session.MessageLimit = chatlog.ClampLimit(*blob.MessageLimit)
	}
	return session
}

// SaveSession writes the session blob.
func SaveSession(store Store, s Session) error {
	if store == nil {
		return nil
	}
	s.MessageLimit = chatlog.ClampLimit(s.MessageLimit)
	bytes, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return store.Write(SessionKey, string(bytes))
}

// FileStore is a Store backed by a TOML file. Every Write rewrites the file.
type FileStore struct {
	path   string
	values map[string]string
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// Open loads the store at path. A missing or unreadable file yields an empty
// store; only path resolution can fail.
func Open(path string) (*FileStore, error) {
	resolved, err := pathutil.Resolve(path, defaultSettingsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	store := &FileStore{path: resolved, values: map[string]string{}}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return store, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return store, nil // Graceful degradation
	}

	values := map[string]string{}
	if err := toml.Unmarshal(bytes, &values); err != nil {
		return store, nil // Graceful degradation
	}
	store.values = values
	return store, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read implements Store.
func (s *FileStore) Read(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Write implements Store, creating directories as needed.
func (s *FileStore) Write(key, value string) error {
	s.values[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore map[string]string

// Read implements Store.
func (m MemoryStore) Read(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Write implements Store.
func (m MemoryStore) Write(key, value string) error {
	m[key] = value
	return nil
}
