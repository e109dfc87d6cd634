package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContextStore = (*ContextStore)(nil)

const contextPrefix = "parley:context:"

// ContextStore implements driven.ContextStore using Redis.
// Entries are stored as JSON without a Redis TTL; freshness is judged by the
// service from the entry timestamp, and the janitor removes idle entries.
type ContextStore struct {
	client *redis.Client
}

// NewContextStore creates a new Redis-backed ContextStore
func NewContextStore(client *redis.Client) *ContextStore {
	return &ContextStore{client: client}
}

// Get retrieves a cached entry by key
func (s *ContextStore) Get(ctx context.Context, key string) (*domain.ContextEntry, error) {
	data, err := s.client.Get(ctx, contextPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get context entry: %w", err)
	}

	var entry domain.ContextEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal context entry: %w", err)
	}
	return &entry, nil
}

// Put stores an entry under the key, replacing any previous one
func (s *ContextStore) Put(ctx context.Context, key string, entry *domain.ContextEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal context entry: %w", err)
	}

	if err := s.client.Set(ctx, contextPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save context entry: %w", err)
	}
	return nil
}

// Delete removes one entry; removing a missing key is not an error
func (s *ContextStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, contextPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete context entry: %w", err)
	}
	return nil
}

// DeleteAll removes every entry under the context prefix
func (s *ContextStore) DeleteAll(ctx context.Context) error {
	return s.scan(ctx, func(keys []string) error {
		return s.client.Del(ctx, keys...).Err()
	})
}

// DeleteOlderThan removes entries written before the cutoff and reports how
// many were removed
func (s *ContextStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	err := s.scan(ctx, func(keys []string) error {
		for _, key := range keys {
			data, err := s.client.Get(ctx, key).Bytes()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", key, err)
			}

			var entry domain.ContextEntry
			if err := json.Unmarshal(data, &entry); err != nil {
				// Unreadable entries are garbage; sweep them too.
				if err := s.client.Del(ctx, key).Err(); err != nil {
					return err
				}
				removed++
				continue
			}

			if entry.Timestamp.Before(cutoff) {
				if err := s.client.Del(ctx, key).Err(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Ping checks if the Redis backend is healthy
func (s *ContextStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// scan iterates all context keys in batches and hands them to fn
func (s *ContextStore) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, contextPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan context keys: %w", err)
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
