// Package session owns the authenticated session: an opaque backend token and
// the user it belongs to, persisted durably across restarts. The store is an
// explicit object injected where needed; nothing in the application reads
// ambient session state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/config"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// User identifies the authenticated account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Session pairs the token with its user. Token present ⇔ user present.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Authenticator is the slice of the API client the store depends on.
type Authenticator interface {
	LoginToken(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
}

// Store holds the current session and keeps the session file in sync with it.
type Store struct {
	mu         sync.RWMutex
	current    Session
	path       string
	passphrase string
	api        Authenticator
	notifier   notify.Notifier
	logger     *zap.Logger
}

// New builds a Store and synchronously rehydrates any persisted session
// before returning, so the first routing decision sees the restored state.
// A missing or unreadable session file means "not authenticated", never an
// error.
func New(cfg config.SessionConfig, api Authenticator, notifier notify.Notifier, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		path:       cfg.FilePath,
		passphrase: cfg.Passphrase,
		api:        api,
		notifier:   notifier,
		logger:     logger,
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("session file unreadable", zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	if s.passphrase != "" {
		raw, err = decrypt(raw, s.passphrase)
		if err != nil {
			s.logger.Warn("session file could not be decrypted", zap.Error(err))
			return
		}
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("session file malformed", zap.Error(err))
		return
	}

	// Token and user must both be present; a half-written session is treated
	// as no session.
	if sess.Token == "" || sess.User == nil {
		return
	}

	s.current = sess
	s.logger.Info("session restored", zap.String("email", sess.User.Email))
}

// Login exchanges credentials for a token and persists the session. On any
// failure the prior state is left untouched and false is returned; the API
// client has already raised the single failure notice.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	token, err := s.api.LoginToken(ctx, email, password)
	if err != nil {
		return false
	}

	sess := Session{
		Token: token,
		// The token endpoint returns no profile; the email doubles as the
		// identity until a refresh, same as the original portal.
		User: &User{ID: "1", Email: email},
	}

	if err := s.persist(sess); err != nil {
		s.logger.Error("session persist failed", zap.Error(err))
		s.notifyError("Login Failed", "Could not save your session")
		return false
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.notifyInfo("Login successful", "Welcome back to your investor portal")
	return true
}

// Register creates an account. It does not authenticate it; the caller is
// expected to route to login afterwards.
func (s *Store) Register(ctx context.Context, email, password, displayName string) bool {
	if err := s.api.Register(ctx, displayName, email, password); err != nil {
		return false
	}
	s.notifyInfo("Registration successful", "Your account has been created. Please log in.")
	return true
}

// Logout clears the in-memory session and removes the session file. It always
// succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("session file removal failed", zap.Error(err))
	}

	s.notifyInfo("Logged out", "You have been successfully logged out")
}

// Token returns the current session token, or "" when unauthenticated. It
// satisfies apiclient.TokenProvider.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.User == nil {
		return nil
	}
	u := *s.current.User
	return &u
}

// persist writes the session file atomically: encode, optionally encrypt,
// write to a temp file, rename into place.
func (s *Store) persist(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if s.passphrase != "" {
		raw, err = encrypt(raw, s.passphrase)
		if err != nil {
			return fmt.Errorf("encrypt session: %w", err)
		}
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}

	return os.Chmod(s.path, 0o600)
}

func (s *Store) notifyInfo(title, message string) {
	if s.notifier != nil {
		s.notifier.Info(title, message)
	}
}

func (s *Store) notifyError(title, message string) {
	if s.notifier != nil {
		s.notifier.Error(title, message)
	}
}
