// Package session keeps the server-side half of each credential: one
// Redis record per user, expiring together with the token it backs.
// Deleting the record revokes the credential even while the token still
// verifies cryptographically.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the key is absent or expired; the caller should treat
// the subject as logged out.
var ErrNotFound = errors.New("session not found")

// ErrUnavailable means Redis itself failed; callers must not confuse this
// with a missing session.
var ErrUnavailable = errors.New("session store unavailable")

const keyPrefix = "session:"

// Record binds a live token to its subject. At most one record exists per
// user; a new login overwrites the previous one.
type Record struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`
}

type Store struct {
	rdb redis.UniversalClient
}

func NewStore(rdb redis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

// Set upserts the record and resets its TTL.
func (s *Store) Set(ctx context.Context, userID string, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKey(userID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID string) (*Record, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		// A corrupt record is unusable; report it as absent.
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Delete removes the record. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// RemainingTTL reports the seconds until the record expires, or -1 when
// the record is missing or carries no TTL.
func (s *Store) RemainingTTL(ctx context.Context, userID string) (int64, error) {
	ttl, err := s.rdb.TTL(ctx, sessionKey(userID)).Result()
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if ttl < 0 {
		return -1, nil
	}
	return int64(ttl.Seconds()), nil
}

// Update rewrites the record while preserving its current expiry. When the
// record has no TTL left to preserve, the fallback TTL is applied.
func (s *Store) Update(ctx context.Context, userID string, rec Record, fallback time.Duration) error {
	remaining, err := s.RemainingTTL(ctx, userID)
	if err != nil {
		return err
	}
	ttl := fallback
	if remaining > 0 {
		ttl = time.Duration(remaining) * time.Second
	}
	return s.Set(ctx, userID, rec, ttl)
}

func sessionKey(userID string) string {
	return keyPrefix + userID
}
