package mocks

import (
	"context"

	"wayfarer/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/mock"
)

// MockStoreRepository мок для StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Load(ctx context.Context) ([]entity.Location, []entity.Review, error) {
	args := m.Called(ctx)
	var locations []entity.Location
	if args.Get(0) != nil {
		locations = args.Get(0).([]entity.Location)
	}
	var reviews []entity.Review
	if args.Get(1) != nil {
		reviews = args.Get(1).([]entity.Review)
	}
	return locations, reviews, args.Error(2)
}

func (m *MockStoreRepository) Save(ctx context.Context, locations []entity.Location, reviews []entity.Review) error {
	args := m.Called(ctx, locations, reviews)
	return args.Error(0)
}

func (m *MockStoreRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStoreRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAuditRepository мок для AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditEntry), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
