package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// WebSessionStore keeps server-side session values in Redis.
// Key format: websession:<session_id>
type WebSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWebSessionStore creates a store whose entries expire after ttl.
func NewWebSessionStore(client *redis.Client, ttl time.Duration) *WebSessionStore {
	return &WebSessionStore{client: client, ttl: ttl}
}

// Get returns the stored session or (nil, nil) when the key is absent.
func (s *WebSessionStore) Get(ctx context.Context, id string) (*domain.WebSession, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("web session get: %w", err)
	}

	var ws domain.WebSession
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("web session decode: %w", err)
	}
	return &ws, nil
}

func (s *WebSessionStore) Save(ctx context.Context, id string, ws *domain.WebSession) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("web session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("web session set: %w", err)
	}
	return nil
}

func (s *WebSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("web session delete: %w", err)
	}
	return nil
}

func (s *WebSessionStore) key(id string) string {
	return "websession:" + id
}
