package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps per-session one-shot notices in redis so the message survives
// process restarts and is shared across replicas. GETDEL gives the atomic
// take-and-clear read.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (s *Store) Put(ctx context.Context, sessionID, message string) error {
	if err := s.client.Set(ctx, key(sessionID), message, s.ttl).Err(); err != nil {
		return fmt.Errorf("set notice: %w", err)
	}
	return nil
}

func (s *Store) Take(ctx context.Context, sessionID string) (string, error) {
	message, err := s.client.GetDel(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("take notice: %w", err)
	}
	return message, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func key(sessionID string) string {
	return "invoice-service:notice:" + sessionID
}
