package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreEntry - строка таблицы key-value хранилища
// Контракт тот же, что у Redis-бэкенда: вся коллекция в JSON под ключом
type StoreEntry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value []byte `gorm:"column:value"`
}

func (StoreEntry) TableName() string {
	return "store_entries"
}

// postgresStoreRepository реализует StoreRepository поверх PostgreSQL через GORM
// Альтернативный бэкенд для окружений без Redis, выбирается через STORE_BACKEND
type postgresStoreRepository struct {
	db *gorm.DB
}

// NewPostgresStoreRepository создает хранилище каталога в PostgreSQL
func NewPostgresStoreRepository(db *gorm.DB) StoreRepository {
	return &postgresStoreRepository{db: db}
}

// Load читает обе коллекции из таблицы store_entries
func (r *postgresStoreRepository) Load(ctx context.Context) ([]entity.Location, []entity.Review, error) {
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

func (r *postgresStoreRepository) loadKey(ctx context.Context, key string, dest interface{}) error {
	var row StoreEntry
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// Строки нет - коллекция пуста
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", key, result.Error)
	}

	if err := json.Unmarshal(row.Value, dest); err != nil {
		// Закрываемся в пустую коллекцию вместо фатальной ошибки загрузки
		logger.Warn().
			Err(err).
			Str("key", key).
			Msg("Stored collection is not valid JSON, treating as empty")
		return nil
	}

	return nil
}

// Save записывает обе коллекции через upsert по первичному ключу
func (r *postgresStoreRepository) Save(ctx context.Context, locations []entity.Location, reviews []entity.Review) error {
	locData, err := json.Marshal(locations)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	revData, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to marshal reviews: %w", err)
	}

	rows := []StoreEntry{
		{Key: LocationsStoreKey, Value: locData},
		{Key: ReviewsStoreKey, Value: revData},
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows)

	if result.Error != nil {
		return fmt.Errorf("failed to save collections: %w", result.Error)
	}

	return nil
}

// Clear удаляет обе строки хранилища
func (r *postgresStoreRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Where("key IN ?", []string{LocationsStoreKey, ReviewsStoreKey}).
		Delete(&StoreEntry{})

	if result.Error != nil {
		return fmt.Errorf("failed to clear store entries: %w", result.Error)
	}

	return nil
}

func (r *postgresStoreRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
