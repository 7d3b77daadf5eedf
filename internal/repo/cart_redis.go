package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// RedisCartStore keeps carts as JSON strings whose key TTL is the cart expiry.
type RedisCartStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisCartStore) key(k string) string {
	return s.Prefix + "cart:" + k
}

func (s *RedisCartStore) LoadCart(ctx context.Context, key string) (models.CartLines, error) {
	raw, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.CartLines{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines models.CartLines
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", key, err)
	}
	if lines == nil {
		lines = models.CartLines{}
	}
	return lines, nil
}

func (s *RedisCartStore) SaveCart(ctx context.Context, key string, lines models.CartLines, ttl time.Duration) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(key), raw, ttl).Err()
}

func (s *RedisCartStore) DeleteCart(ctx context.Context, key string) error {
	return s.Client.Del(ctx, s.key(key)).Err()
}
