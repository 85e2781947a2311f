package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// RedisStore хранит снимки черновиков в Redis как JSON-строки
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore создает хранилище. ttl = 0 - без срока жизни.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save перезаписывает снимок под ключом key
func (s *RedisStore) Save(ctx context.Context, key string, snapshot domain.DraftSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - SET %s: %v", ErrExecQuery, key, err)
	}

	return nil
}

// Load читает снимок; ErrSnapshotNotFound, если ключа нет
func (s *RedisStore) Load(ctx context.Context, key string) (*domain.DraftSnapshot, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - GET %s: %v", ErrExecQuery, key, err)
	}

	var snapshot domain.DraftSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: Load - unmarshal %s: %v", ErrDecode, key, err)
	}

	return &snapshot, nil
}

// Delete удаляет снимок; отсутствие ключа ошибкой не считается
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: Delete - DEL %s: %v", ErrExecQuery, key, err)
	}
	return nil
}
