package flowstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares flow state across instances behind a load balancer.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauthflow:",
	}
}

func (r *RedisStore) key(state string) string {
	return r.prefix + state
}

func (r *RedisStore) Save(ctx context.Context, s State) error {
	if s.State == "" || s.CodeVerifier == "" {
		return errors.New("flowstate: missing state or code verifier")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("flowstate: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.State), data, TTL).Err()
}

func (r *RedisStore) Consume(ctx context.Context, state string) (*State, error) {
	// GETDEL keeps consumption one-shot even across instances.
	val, err := r.client.GetDel(ctx, r.key(state)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s State
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("flowstate: failed to unmarshal: %w", err)
	}

	return &s, nil
}
