// README: Conversation store backed by a single Redis list shared by all API replicas.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKey = "travelbot:conversation"
	// Attempts for the optimistic WATCH/MULTI rewrite in a filtered Clear.
	clearRetries = 5
)

// RedisStore keeps every turn as a JSON element of one list, so RPUSH's
// reply is the log length.
type RedisStore struct {
	redis *redis.Client
	key   string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: client, key: key}
}

func (s *RedisStore) Append(ctx context.Context, t Turn) (int, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return 0, fmt.Errorf("encode turn: %w", err)
	}
	n, err := s.redis.RPush(ctx, s.key, payload).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return int(n), nil
}

func (s *RedisStore) List(ctx context.Context, userID string) ([]Turn, error) {
	turns, err := s.readAll(ctx, s.redis)
	if err != nil {
		return nil, err
	}
	return filterTurns(turns, userID, true), nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		if err := s.redis.Del(ctx, s.key).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	rewrite := func(tx *redis.Tx) error {
		turns, err := s.readAll(ctx, tx)
		if err != nil {
			return err
		}
		kept := filterTurns(turns, userID, false)
		if len(kept) == len(turns) {
			return nil
		}
		values := make([]any, 0, len(kept))
		for _, t := range kept {
			payload, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("encode turn: %w", err)
			}
			values = append(values, payload)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.key)
			if len(values) > 0 {
				pipe.RPush(ctx, s.key, values...)
			}
			return nil
		})
		return err
	}

	for i := 0; i < clearRetries; i++ {
		err := s.redis.Watch(ctx, rewrite, s.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: clear for %q kept conflicting", ErrUnavailable, userID)
}

func (s *RedisStore) readAll(ctx context.Context, c redis.Cmdable) ([]Turn, error) {
	raw, err := c.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
