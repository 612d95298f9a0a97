package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
)

type redisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *redisBackend {
	return &redisBackend{client: client}
}

func (b *redisBackend) Name() string { return "redis" }

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewNotFoundError("settings not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get settings", err)
	}
	return data, nil
}

func (b *redisBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errs.NewDatabaseError("write", "failed to set settings", err)
	}
	return nil
}
