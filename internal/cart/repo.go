package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	myErr "shopkart-main/internal/types/errors"
)

// RedisSnapshotRepository хранит сериализованный массив LineItem
// под одним ключом. Один ключ - одна корзина, последняя запись побеждает
type RedisSnapshotRepository struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

func NewRedisSnapshotRepository(redisClient *redis.Client, logger *zap.SugaredLogger) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		RedisClient: redisClient,
		Logger:      logger,
	}
}

// Save полностью перезаписывает снапшот корзины
func (r *RedisSnapshotRepository) Save(ctx context.Context, key string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}

	snapshot, err := json.Marshal(items)
	if err != nil {
		r.Logger.Error(
			"Failed encode cart snapshot to JSON",
			zap.Error(err),
			zap.String("key", key),
		)

		return err
	}

	// TTL нет - корзина живет до явной очистки ключа
	if err := r.RedisClient.Set(ctx, key, snapshot, 0).Err(); err != nil {
		r.Logger.Error(
			"Failed save cart snapshot to Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return myErr.ErrStorageInternal
	}

	return nil
}

// Load читает последний снапшот. Отсутствующий ключ дает пустую корзину
func (r *RedisSnapshotRepository) Load(ctx context.Context, key string) ([]LineItem, error) {
	snapshot, err := r.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []LineItem{}, nil
		}

		r.Logger.Error(
			"Failed get cart snapshot from Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return nil, myErr.ErrStorageInternal
	}

	var items []LineItem
	if err := json.Unmarshal(snapshot, &items); err != nil {
		r.Logger.Error(
			"Failed decode cart snapshot from JSON",
			zap.Error(err),
			zap.String("key", key),
		)

		return nil, err
	}

	return items, nil
}
