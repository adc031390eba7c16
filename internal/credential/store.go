// Package credential keeps the session token between runs and answers the
// one question the client may ask of it locally: is it already expired.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// Store is a file-backed token store
type Store struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewStore returns a store persisting the token at path
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the token file location
func (s *Store) Path() string {
	return s.path
}

// Token returns the stored token. A missing or expired token is reported
// as a *taskboard.AuthError; the signature is never checked here, that is
// the board service's job.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", &taskboard.AuthError{Reason: taskboard.AuthMissing}
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", &taskboard.AuthError{Reason: taskboard.AuthMissing}
	}

	if exp, ok := expiry(token); ok && !s.now().Before(exp) {
		return "", &taskboard.AuthError{
			Reason: taskboard.AuthExpired,
			Err:    fmt.Errorf("expired at %s", exp.Format(time.RFC3339)),
		}
	}
	return token, nil
}

// Save replaces the stored token
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// expiry reads the exp claim of a JWT without verifying it. Tokens that
// are not JWTs, or carry no exp, report ok == false.
func expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
