package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sromero1905/elearningfront/pkg/redis"
)

// RedisStore 基于 Redis 的会话存储，多实例部署共享会话
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	b, err := s.client.GetSession(ctx, id)
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: 读取失败: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("session: 反序列化失败: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, rec Record, ttl time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: 序列化失败: %w", err)
	}
	return s.client.SetSession(ctx, id, b, ttl)
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.client.DeleteSession(ctx, id)
}
