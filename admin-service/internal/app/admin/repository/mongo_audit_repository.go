package repository

import (
	"context"
	"fmt"
	"time"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoAuditRepository хранит журнал действий администратора в MongoDB
type mongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository создает репозиторий журнала
// Автоматически создает индекс по created_at для выборки последних записей
func NewMongoAuditRepository(db *mongo.Database) AuditRepository {
	collection := db.Collection("audit_log")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create index on created_at")
	}

	return &mongoAuditRepository{collection: collection}
}

// Record добавляет запись в журнал
func (r *mongoAuditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

// Recent возвращает последние записи журнала, новые первыми
func (r *mongoAuditRepository) Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []entity.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}
