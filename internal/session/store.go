// Package session implements the server-side session store. A session
// is an opaque random token mapped in Redis to a numeric user id with a
// TTL; the HTTP layer carries the token in a cookie. Handlers receive
// the resolved user id and pass it into the services explicitly.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yerassyl/event-reservation/internal/domain"
)

// CookieName is the cookie the session token travels in.
const CookieName = "session_token"

const keyPrefix = "session:"

// Store issues, resolves and revokes session tokens.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store writing sessions with the given TTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create issues a fresh token for the user and stores it with the TTL.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	if err := s.rdb.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id behind a token, refreshing its TTL.
// Unknown or expired tokens fail with ErrSessionRequired.
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrSessionRequired
	}
	userID, err := s.rdb.GetEx(ctx, keyPrefix+token, s.ttl).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrSessionRequired
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Destroy revokes a token. Revoking an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TTL exposes the configured session lifetime for cookie expiry.
func (s *Store) TTL() time.Duration { return s.ttl }
