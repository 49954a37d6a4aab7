package props

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const folderKey = "photofeed:folder"

// Store is the key-value collaborator holding mutable runtime properties.
// Currently the only property is the storage folder reference.
type Store interface {
	// Folder returns the configured folder reference, or "" when unset.
	Folder(ctx context.Context) (string, error)
	// SetFolder stores the folder reference.
	SetFolder(ctx context.Context, folder string) error
}

// RedisStore implements Store on top of a Redis connection.
type RedisStore struct {
	rdb *redis.Client
}

// New creates a Store backed by the given Redis client.
func New(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Connect opens a Redis connection from the configuration and returns a
// Store backed by it.
func Connect(cfg Config) (*RedisStore, *redis.Client) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return New(rdb), rdb
}

func (s *RedisStore) Folder(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, folderKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read folder property: %w", err)
	}
	return val, nil
}

func (s *RedisStore) SetFolder(ctx context.Context, folder string) error {
	if err := s.rdb.Set(ctx, folderKey, folder, 0).Err(); err != nil {
		return fmt.Errorf("failed to store folder property: %w", err)
	}
	return nil
}
