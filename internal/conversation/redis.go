package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists conversation state as a JSON document per thread.
// Writes happen under the engine's per-thread lock, so the read-modify-write
// cycle is safe.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed checkpoint store
func NewRedisStore(addr, password string, dbNum int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})
	return &RedisStore{client: rdb}
}

func threadKey(threadID string) string {
	return fmt.Sprintf("thread:%s:turns", threadID)
}

// Load reads the thread's turn log; missing keys yield an empty state
func (r *RedisStore) Load(ctx context.Context, threadID string) (*State, error) {
	val, err := r.client.Get(ctx, threadKey(threadID)).Result()
	if err == redis.Nil {
		return NewState(threadID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	state := NewState(threadID)
	if err := json.Unmarshal([]byte(val), &state.Turns); err != nil {
		return nil, fmt.Errorf("%w: corrupt state for thread %s: %v", ErrStorageUnavailable, threadID, err)
	}
	return state, nil
}

// Save writes the full turn log back
func (r *RedisStore) Save(ctx context.Context, state *State) error {
	data, err := json.Marshal(state.Turns)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := r.client.Set(ctx, threadKey(state.ThreadID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
