// Package auth implements the client's login gate. The backend exposes no
// authentication endpoint; access is guarded by a fixed credential pair,
// with the session and remembered credentials persisted through the config
// store port.
package auth

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/config"
)

const (
	validUsername = "hasan"
	validPassword = "Duniahasan2012s*"
)

// Service checks credentials and owns the persisted session.
type Service struct {
	store  config.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates an auth service backed by the given store.
func NewService(store config.Store) *Service {
	return &Service{
		store:  store,
		logger: slog.Default().With("component", "auth"),
		now:    time.Now,
	}
}

// Login validates the credentials and persists a session. When remember is
// set the password is saved for the next login prompt; the username is
// always saved.
func (s *Service) Login(username, password string, remember bool) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return common.NewUserError("Username dan password harus diisi", common.ErrBadCredentials)
	}

	if username != validUsername || password != validPassword {
		return common.NewUserError("Username atau password salah", common.ErrBadCredentials)
	}

	prefs, err := s.store.LoadPrefs()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	prefs.SavedUsername = username
	prefs.RememberPassword = remember
	if remember {
		prefs.SavedPassword = password
	} else {
		prefs.SavedPassword = ""
	}
	if err := s.store.SavePrefs(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	session := config.Session{
		Username:  username,
		LoginTime: s.now(),
	}
	if err := s.store.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Logged in", "username", username)
	return nil
}

// Logout removes the saved session. Remembered credentials are kept.
func (s *Service) Logout() error {
	if err := s.store.ClearSession(); err != nil {
		return err
	}
	s.logger.Info("Logged out")
	return nil
}

// RequireSession returns the active session or ErrNotLoggedIn.
func (s *Service) RequireSession() (*config.Session, error) {
	session, err := s.store.LoadSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, common.NewUserError("Silakan login terlebih dahulu", common.ErrNotLoggedIn)
	}
	return session, nil
}

// SavedCredentials returns the remembered username and, when the user opted
// in, the remembered password.
func (s *Service) SavedCredentials() (username, password string, remember bool) {
	prefs, err := s.store.LoadPrefs()
	if err != nil {
		return "", "", false
	}
	if !prefs.RememberPassword {
		return prefs.SavedUsername, "", false
	}
	return prefs.SavedUsername, prefs.SavedPassword, true
}
