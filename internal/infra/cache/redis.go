package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/thienvyma/tagiangecolodge/internal/domain/auth"
)

const sessionKeyPrefix = "admin_session:"

// SessionStore persists admin sessions in redis so logins survive restarts
// and multiple instances share one session space.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(addr, password string) *SessionStore {
	return &SessionStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

// Ping verifies the connection, for readiness checks.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) Save(ctx context.Context, session *auth.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("cache: marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache: save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token auth.Token) (*auth.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, auth.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get session: %w", err)
	}
	var session auth.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("cache: decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token auth.Token) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("cache: delete session: %w", err)
	}
	return nil
}

func sessionKey(token auth.Token) string {
	return sessionKeyPrefix + string(token)
}
