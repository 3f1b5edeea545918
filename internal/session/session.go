// internal/session/session.go
package session

import (
	"context"
	"sync"
	"time"

	"tutorlink-client/internal/common/errors"
)

// Session is the authenticated state carried for the duration of a browser
// session: set on login/registration/OAuth exchange, read at the top of every
// protected page load, cleared on logout.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	UserID       string    `json:"userId"`
	UserRole     string    `json:"userRole"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store is the injected session context. Implementations must treat an absent
// or expired session uniformly as "not authenticated" so every caller gets the
// same redirect-to-sign-in behavior.
type Store interface {
	Save(ctx context.Context, sess *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory; the default backend and the
// one tests inject.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *sess
	m.sess = &copied
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return nil, errors.NewUnauthorizedError("no session")
	}
	if m.sess.IsExpired() {
		return nil, errors.NewUnauthorizedError("session expired")
	}
	copied := *m.sess
	return &copied, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
