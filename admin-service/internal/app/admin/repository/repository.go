package repository

import (
	"context"

	"wayfarer/admin-service/internal/app/admin/entity"
)

// Фиксированные ключи хранилища. Под каждым ключом лежит вся коллекция
// целиком в JSON - формат совместим с исходными данными админки
const (
	LocationsStoreKey = "tourism_admin_locations"
	ReviewsStoreKey   = "tourism_admin_reviews"
)

// StoreRepository определяет контракт key-value хранилища каталога:
// две коллекции под двумя фиксированными ключами, загрузка и сохранение
// всегда парой. Отсутствие ключа эквивалентно пустой коллекции
type StoreRepository interface {
	// Load читает обе коллекции. Нечитаемое значение ключа не является
	// фатальной ошибкой: коллекция считается пустой, диагностика в лог
	Load(ctx context.Context) ([]entity.Location, []entity.Review, error)
	// Save сериализует и записывает обе коллекции целиком
	Save(ctx context.Context, locations []entity.Location, reviews []entity.Review) error
	// Clear удаляет оба ключа
	Clear(ctx context.Context) error
	Close() error
}

// AuditRepository определяет методы журнала действий администратора
type AuditRepository interface {
	Record(ctx context.Context, entry *entity.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error)
}
