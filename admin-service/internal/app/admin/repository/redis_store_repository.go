package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// redisStoreRepository реализует StoreRepository поверх Redis
// Каждая коллекция хранится целиком как JSON под своим ключом, без TTL
type redisStoreRepository struct {
	client *redis.Client
}

// NewRedisStoreRepository создает хранилище каталога в Redis
// Проверяет соединение через ping перед возвратом
func NewRedisStoreRepository(addr, password string, db int) (StoreRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStoreRepository{client: client}, nil
}

// NewRedisStoreRepositoryWithClient оборачивает готовый клиент (для тестов с miniredis)
func NewRedisStoreRepositoryWithClient(client *redis.Client) StoreRepository {
	return &redisStoreRepository{client: client}
}

// Load читает обе коллекции из Redis
// Отсутствующий ключ дает пустую коллекцию. Непарсящееся значение тоже:
// закрываемся в пустую коллекцию и пишем диагностику, не роняя загрузку
func (r *redisStoreRepository) Load(ctx context.Context) ([]entity.Location, []entity.Review, error) {
	var locations []entity.Location
	if err := r.loadKey(ctx, LocationsStoreKey, &locations); err != nil {
		return nil, nil, err
	}

	var reviews []entity.Review
	if err := r.loadKey(ctx, ReviewsStoreKey, &reviews); err != nil {
		return nil, nil, err
	}

	return locations, reviews, nil
}

// loadKey читает один ключ и десериализует его в dest
func (r *redisStoreRepository) loadKey(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Ключа нет - коллекция пуста
			return nil
		}
		return fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Поврежденные данные не фатальны: считаем коллекцию пустой
		logger.Warn().
			Err(err).
			Str("key", key).
			Msg("Stored collection is not valid JSON, treating as empty")
		return nil
	}

	return nil
}

// Save сериализует обе коллекции и записывает их одним pipeline
func (r *redisStoreRepository) Save(ctx context.Context, locations []entity.Location, reviews []entity.Review) error {
	locData, err := json.Marshal(locations)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	revData, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to marshal reviews: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, LocationsStoreKey, locData, 0)
	pipe.Set(ctx, ReviewsStoreKey, revData, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save collections to redis: %w", err)
	}

	return nil
}

// Clear удаляет оба ключа хранилища
func (r *redisStoreRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, LocationsStoreKey, ReviewsStoreKey).Err(); err != nil {
		return fmt.Errorf("failed to clear store keys: %w", err)
	}
	return nil
}

func (r *redisStoreRepository) Close() error {
	return r.client.Close()
}
