package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/leadtrack/internal/entity"
)

const defaultRedisKey = "crm-leads"

// RedisStore keeps the collection under a single key, the same JSON
// document the file backend writes.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]entity.Lead, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	var leads []entity.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, false, fmt.Errorf("parsing redis key %s: %w", s.key, err)
	}
	return leads, true, nil
}

func (s *RedisStore) Save(ctx context.Context, leads []entity.Lead) error {
	data, err := json.Marshal(leads)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
