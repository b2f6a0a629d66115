package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

const redisKeyPrefix = "ephemeral:keypair:"

// RedisKeypairRepository stores keypairs as JSON strings under
// "ephemeral:keypair:<dbKey>". Keys never expire; deletion is explicit.
type RedisKeypairRepository struct {
	client redis.UniversalClient
}

// NewRedisKeypairRepository creates a repository over client. The caller owns the
// client and closes it.
func NewRedisKeypairRepository(client redis.UniversalClient) *RedisKeypairRepository {
	return &RedisKeypairRepository{client: client}
}

// Put writes the record for dbKey, replacing any existing one.
func (r *RedisKeypairRepository) Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error {
	data, err := json.Marshal(keypair)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal keypair")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+dbKey, data, 0).Err(); err != nil {
		return apperrors.Wrap(err, "failed to store keypair")
	}
	return nil
}

// Get reads the record for dbKey.
func (r *RedisKeypairRepository) Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+dbKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrKeypairNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get keypair")
	}

	var keypair domain.StoredKeypair
	if err := json.Unmarshal(data, &keypair); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptedKeypair, err)
	}
	return &keypair, nil
}

// Delete removes the record for dbKey.
func (r *RedisKeypairRepository) Delete(ctx context.Context, dbKey string) error {
	deleted, err := r.client.Del(ctx, redisKeyPrefix+dbKey).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete keypair")
	}
	if deleted == 0 {
		return domain.ErrKeypairNotFound
	}
	return nil
}
