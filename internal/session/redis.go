package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visa-checkout/internal/checkout"
	"visa-checkout/pkg/redis"
)

const DefaultTTL = 24 * time.Hour

// RedisStore keeps checkout state as JSON under state:<session id>.
type RedisStore struct {
	kv  KV
	ttl time.Duration
}

func NewRedisStore(kv KV, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{kv: kv, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID int64) (checkout.State, error) {
	data, err := s.kv.Get(ctx, buildStateKey(sessionID))
	if errors.Is(err, redis.ErrNotFound) {
		return checkout.NewState(), nil
	}
	if err != nil {
		return checkout.State{}, fmt.Errorf("get state: %w", err)
	}

	var state checkout.State
	if err := json.Unmarshal(data, &state); err != nil {
		return checkout.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	// Unknown steps come from an older or corrupt payload; start over.
	if !state.Step.Valid() {
		return checkout.NewState(), nil
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID int64, state checkout.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := s.kv.Set(ctx, buildStateKey(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *RedisStore) Drop(ctx context.Context, sessionID int64) error {
	if err := s.kv.Del(ctx, buildStateKey(sessionID)); err != nil {
		return fmt.Errorf("drop state: %w", err)
	}
	return nil
}

func buildStateKey(sessionID int64) string {
	return fmt.Sprintf("state:%d", sessionID)
}
