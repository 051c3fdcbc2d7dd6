package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdesk/task-system/internal/core/domain"
)

const sessionKeyPrefix = "session:"
const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps the session-id → principal binding in Redis.
// Key format: session:<id>. Sessions expire after ttl; logout deletes them
// eagerly, which is what makes revocation immediate.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create persists the principal under a fresh random session id.
func (s *SessionStore) Create(ctx context.Context, p *domain.Principal) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// Get resolves a session id back to its principal. A missing key, whether
// expired or destroyed, is domain.ErrSessionNotFound, not a storage failure.
func (s *SessionStore) Get(ctx context.Context, sid string) (*domain.Principal, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &p, nil
}

// Destroy deletes the session. Deleting an already-gone session is not an
// error.
func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return sessionKeyPrefix + sid
}

// newSessionID returns 128 bits of crypto randomness as hex.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
