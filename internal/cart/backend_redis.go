package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "cart:"

// RedisBackend stores each cart as a JSON blob at one key, suitable
// when several storefront instances share cart state.
type RedisBackend struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisBackend(addr, password string, db int, ttl time.Duration) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisBackend{client: client, keyPrefix: defaultKeyPrefix, ttl: ttl}, nil
}

func NewRedisBackendWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisBackend {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisBackend{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (b *RedisBackend) Load(ctx context.Context, ns string) ([]Entry, error) {
	raw, err := b.client.Get(ctx, b.keyPrefix+ns).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", ns, err)
	}
	return entries, nil
}

func (b *RedisBackend) Save(ctx context.Context, ns string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.keyPrefix+ns, raw, b.ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, ns string) error {
	return b.client.Del(ctx, b.keyPrefix+ns).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
