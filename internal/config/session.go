package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session records a successful login.
type Session struct {
	LoginTime time.Time `json:"login_time"`
	Username  string    `json:"username"`
}

// Prefs holds user preferences that survive restarts: the remembered
// credentials and the theme choice. The original client kept these in
// browser local storage; here they live behind the Store port.
type Prefs struct {
	SavedUsername    string `json:"saved_username"`
	SavedPassword    string `json:"saved_password,omitempty"`
	RememberPassword bool   `json:"remember_password"`
	DarkMode         bool   `json:"dark_mode"`
}

// Store is the persistence port for session and preference state. Nothing
// else in the application touches the filesystem for state.
type Store interface {
	LoadSession() (*Session, error)
	SaveSession(Session) error
	ClearSession() error
	LoadPrefs() (Prefs, error)
	SavePrefs(Prefs) error
}

// FileStore implements Store with JSON files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// NewDefaultStore creates a store in the default config directory.
func NewDefaultStore() (*FileStore, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(dir), nil
}

func (s *FileStore) sessionPath() string {
	return filepath.Join(s.dir, "session.json")
}

func (s *FileStore) prefsPath() string {
	return filepath.Join(s.dir, "prefs.json")
}

// LoadSession returns the saved session, or nil if none exists.
func (s *FileStore) LoadSession() (*Session, error) {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &session, nil
}

// SaveSession persists the session.
func (s *FileStore) SaveSession(session Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.sessionPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// ClearSession removes any saved session.
func (s *FileStore) ClearSession() error {
	if err := os.Remove(s.sessionPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// LoadPrefs returns saved preferences, or zero-value defaults if none exist.
func (s *FileStore) LoadPrefs() (Prefs, error) {
	data, err := os.ReadFile(s.prefsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("failed to read prefs: %w", err)
	}

	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("failed to parse prefs: %w", err)
	}

	return prefs, nil
}

// SavePrefs persists preferences.
func (s *FileStore) SavePrefs(prefs Prefs) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode prefs: %w", err)
	}

	if err := os.WriteFile(s.prefsPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}

	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
