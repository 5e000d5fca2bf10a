package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spendlog/internal/cache"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"

	// flashTTL bounds how long an unread flash message survives.
	flashTTL = 10 * time.Minute
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message string `json:"message"`
	Kind    string `json:"kind"` // "success" or "danger"
}

// StoreInterface defines the interface for session storage operations.
type StoreInterface interface {
	Put(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (userID uint, err error)
	Delete(ctx context.Context, sessionID string) error
	PushFlash(ctx context.Context, sessionID string, flash Flash) error
	PopFlash(ctx context.Context, sessionID string) (*Flash, error)
}

// Store handles server-side session state in Redis. A session exists exactly
// as long as its key does; logout and expiry both reduce to key removal.
type Store struct {
	cache *cache.Client
}

// sessionRecord is the JSON payload stored per active session.
type sessionRecord struct {
	UserID uint `json:"user_id"`
}

// Ensure Store implements StoreInterface
var _ StoreInterface = (*Store)(nil)

// NewStore creates a new session store.
func NewStore(cache *cache.Client) *Store {
	return &Store{cache: cache}
}

// Put records an active session with TTL.
func (s *Store) Put(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// Get resolves a session ID back to its user ID.
func (s *Store) Get(ctx context.Context, sessionID string) (uint, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil || data == nil {
		return 0, fmt.Errorf("session not found")
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("unmarshal session data: %w", err)
	}
	if record.UserID == 0 {
		return 0, fmt.Errorf("invalid user_id in session data")
	}
	return record.UserID, nil
}

// Delete terminates a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}

// PushFlash stores a one-shot message for the session. Losing a flash on a
// Redis hiccup is acceptable, so errors are returned for logging only.
func (s *Store) PushFlash(ctx context.Context, sessionID string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return s.cache.Set(ctx, flashKeyPrefix+sessionID, payload, flashTTL)
}

// PopFlash consumes the pending flash message, nil when there is none.
func (s *Store) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	data, err := s.cache.GetDel(ctx, flashKeyPrefix+sessionID)
	if err != nil || data == nil {
		return nil, nil
	}
	var flash Flash
	if err := json.Unmarshal(data, &flash); err != nil {
		return nil, fmt.Errorf("unmarshal flash: %w", err)
	}
	return &flash, nil
}
