package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/admin-service/internal/app/admin/infrastructure"
	"wayfarer/admin-service/internal/app/admin/repository"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrLocationNotFound = errors.New("location not found")
	ErrReviewNotFound   = errors.New("review not found")
)

// CommandService реализует admin-команды над каталогом
// Единственный компонент с побочными эффектами: изменяет состояние,
// сохраняет обе коллекции в хранилище до возврата из команды и публикует
// уведомление об исходе. Каждая команда либо применяется целиком,
// либо не оставляет изменений
type CommandService struct {
	state     *CatalogState
	store     repository.StoreRepository
	publisher infrastructure.MessagePublisher
	audit     repository.AuditRepository
}

// NewCommandService создает сервис команд с внедрением зависимостей
func NewCommandService(
	state *CatalogState,
	store repository.StoreRepository,
	publisher infrastructure.MessagePublisher,
	audit repository.AuditRepository,
) *CommandService {
	return &CommandService{
		state:     state,
		store:     store,
		publisher: publisher,
		audit:     audit,
	}
}

// Load загружает обе коллекции из хранилища в состояние
// Вызывается один раз при старте сервиса
func (c *CommandService) Load(ctx context.Context) error {
	timer := metrics.NewStoreTimer("admin-service", metrics.StoreOpLoad)
	locations, reviews, err := c.store.Load(ctx)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordStoreError("admin-service", metrics.StoreOpLoad)
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c.state.Reset(locations, reviews)

	logger.Info().
		Int("locations", len(locations)).
		Int("reviews", len(reviews)).
		Msg("Catalog loaded from store")

	return nil
}

// CreateLocation добавляет новую локацию со свежими таймстампами
func (c *CommandService) CreateLocation(ctx context.Context, req *entity.CreateLocationRequest) (*entity.Location, error) {
	c.state.mu.Lock()

	now := time.Now()
	status := entity.LocationStatusActive
	if req.Status != "" {
		status = entity.LocationStatus(req.Status)
	}

	location := entity.Location{
		ID:          c.state.generateID(),
		Name:        req.Name,
		Category:    req.Category,
		Status:      status,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		Hours:       req.Hours,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c.state.locations = append(c.state.locations, location)

	if err := c.persistLocked(ctx); err != nil {
		// Откатываем добавление, команда не оставляет изменений
		c.state.locations = c.state.locations[:len(c.state.locations)-1]
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("create_location", "error")
		return nil, err
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("create_location", "success")
	c.report(ctx, "LOCATION_CREATED", "location", location.ID, entity.SeveritySuccess, "Location added successfully!")

	return &location, nil
}

// UpdateLocation заменяет изменяемые поля локации целиком,
// сохраняя id и createdAt и обновляя updatedAt
func (c *CommandService) UpdateLocation(ctx context.Context, id int64, req *entity.UpdateLocationRequest) (*entity.Location, error) {
	c.state.mu.Lock()

	idx := -1
	for i := range c.state.locations {
		if c.state.locations[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("update_location", "error")
		c.report(ctx, "LOCATION_UPDATE_FAILED", "location", id, entity.SeverityError, "Location not found")
		return nil, ErrLocationNotFound
	}

	previous := c.state.locations[idx]

	location := previous
	location.Name = req.Name
	location.Category = req.Category
	if req.Status != "" {
		location.Status = entity.LocationStatus(req.Status)
	}
	location.Address = req.Address
	location.Phone = req.Phone
	location.Email = req.Email
	location.Description = req.Description
	location.PriceRange = req.PriceRange
	location.Hours = req.Hours
	location.UpdatedAt = time.Now()

	c.state.locations[idx] = location

	if err := c.persistLocked(ctx); err != nil {
		c.state.locations[idx] = previous
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("update_location", "error")
		return nil, err
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("update_location", "success")
	c.report(ctx, "LOCATION_UPDATED", "location", location.ID, entity.SeveritySuccess, "Location updated successfully!")

	return &location, nil
}

// DeleteLocation удаляет локацию. Отсутствующий id - тихий no-op,
// удаление идемпотентно. Отзывы локации НЕ удаляются каскадно:
// осиротевшие отзывы остаются и отображаются с "Unknown Location"
func (c *CommandService) DeleteLocation(ctx context.Context, id int64) error {
	c.state.mu.Lock()

	previous := c.state.locations
	filtered := make([]entity.Location, 0, len(previous))
	for _, l := range previous {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}

	if len(filtered) != len(previous) {
		c.state.locations = filtered
		if err := c.persistLocked(ctx); err != nil {
			c.state.locations = previous
			c.state.mu.Unlock()
			metrics.RecordAdminCommand("delete_location", "error")
			return err
		}
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("delete_location", "success")
	c.report(ctx, "LOCATION_DELETED", "location", id, entity.SeveritySuccess, "Location deleted successfully!")

	return nil
}

// UpdateReview заменяет rating/reviewText/status отзыва и обновляет updatedAt
func (c *CommandService) UpdateReview(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (*entity.Review, error) {
	c.state.mu.Lock()

	idx := -1
	for i := range c.state.reviews {
		if c.state.reviews[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("update_review", "error")
		c.report(ctx, "REVIEW_UPDATE_FAILED", "review", id, entity.SeverityError, "Review not found")
		return nil, ErrReviewNotFound
	}

	previous := c.state.reviews[idx]

	review := previous
	review.Rating = req.Rating
	review.ReviewText = req.ReviewText
	review.Status = entity.ReviewStatus(req.Status)
	review.UpdatedAt = time.Now()

	c.state.reviews[idx] = review

	if err := c.persistLocked(ctx); err != nil {
		c.state.reviews[idx] = previous
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("update_review", "error")
		return nil, err
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("update_review", "success")
	c.report(ctx, "REVIEW_UPDATED", "review", review.ID, entity.SeveritySuccess, "Review updated successfully!")

	return &review, nil
}

// SetReviewStatus переводит отзыв в конечный статус модерации
// Допустимы только approved и rejected
func (c *CommandService) SetReviewStatus(ctx context.Context, id int64, status entity.ReviewStatus) (*entity.Review, error) {
	if status != entity.ReviewStatusApproved && status != entity.ReviewStatusRejected {
		return nil, fmt.Errorf("invalid moderation status %q", status)
	}

	c.state.mu.Lock()

	idx := -1
	for i := range c.state.reviews {
		if c.state.reviews[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("set_review_status", "error")
		c.report(ctx, "REVIEW_MODERATION_FAILED", "review", id, entity.SeverityError, "Review not found")
		return nil, ErrReviewNotFound
	}

	previous := c.state.reviews[idx]

	review := previous
	review.Status = status
	review.UpdatedAt = time.Now()

	c.state.reviews[idx] = review

	if err := c.persistLocked(ctx); err != nil {
		c.state.reviews[idx] = previous
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("set_review_status", "error")
		return nil, err
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("set_review_status", "success")

	if status == entity.ReviewStatusApproved {
		c.report(ctx, "REVIEW_APPROVED", "review", review.ID, entity.SeveritySuccess, "Review approved successfully!")
	} else {
		c.report(ctx, "REVIEW_REJECTED", "review", review.ID, entity.SeveritySuccess, "Review rejected successfully!")
	}

	return &review, nil
}

// DeleteReview удаляет отзыв. Отсутствующий id - тихий no-op
func (c *CommandService) DeleteReview(ctx context.Context, id int64) error {
	c.state.mu.Lock()

	previous := c.state.reviews
	filtered := make([]entity.Review, 0, len(previous))
	for _, r := range previous {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) != len(previous) {
		c.state.reviews = filtered
		if err := c.persistLocked(ctx); err != nil {
			c.state.reviews = previous
			c.state.mu.Unlock()
			metrics.RecordAdminCommand("delete_review", "error")
			return err
		}
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("delete_review", "success")
	c.report(ctx, "REVIEW_DELETED", "review", id, entity.SeveritySuccess, "Review deleted successfully!")

	return nil
}

// SeedDemoData заменяет обе коллекции демонстрационным набором
func (c *CommandService) SeedDemoData(ctx context.Context) error {
	locations, reviews := DemoData()

	c.state.mu.Lock()

	prevLocations, prevReviews := c.state.locations, c.state.reviews
	c.state.locations = locations
	c.state.reviews = reviews
	c.state.seedIDCounter()

	if err := c.persistLocked(ctx); err != nil {
		c.state.locations, c.state.reviews = prevLocations, prevReviews
		c.state.seedIDCounter()
		c.state.mu.Unlock()
		metrics.RecordAdminCommand("seed_demo_data", "error")
		return err
	}
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("seed_demo_data", "success")
	c.report(ctx, "DEMO_DATA_SEEDED", "", 0, entity.SeveritySuccess, "Demo data added successfully!")

	return nil
}

// ClearAllData удаляет оба ключа хранилища и опустошает коллекции
func (c *CommandService) ClearAllData(ctx context.Context) error {
	c.state.mu.Lock()

	timer := metrics.NewStoreTimer("admin-service", metrics.StoreOpClear)
	err := c.store.Clear(ctx)
	timer.ObserveDuration()
	if err != nil {
		c.state.mu.Unlock()
		metrics.RecordStoreError("admin-service", metrics.StoreOpClear)
		metrics.RecordAdminCommand("clear_all_data", "error")
		return fmt.Errorf("failed to clear store: %w", err)
	}

	c.state.locations = nil
	c.state.reviews = nil
	c.state.seedIDCounter()
	c.state.mu.Unlock()

	metrics.RecordAdminCommand("clear_all_data", "success")
	c.report(ctx, "ALL_DATA_CLEARED", "", 0, entity.SeveritySuccess, "All data cleared successfully!")

	return nil
}

// persistLocked сохраняет обе коллекции в хранилище
// Вызывающий держит write lock: сохранение синхронно относительно команды,
// перезапуск сервиса после завершенной команды ничего не теряет
func (c *CommandService) persistLocked(ctx context.Context) error {
	timer := metrics.NewStoreTimer("admin-service", metrics.StoreOpSave)
	defer timer.ObserveDuration()

	if err := c.store.Save(ctx, c.state.locations, c.state.reviews); err != nil {
		metrics.RecordStoreError("admin-service", metrics.StoreOpSave)
		return fmt.Errorf("failed to persist catalog: %w", err)
	}

	return nil
}

// report публикует уведомление об исходе команды в Kafka и пишет запись
// в журнал. Обе операции best-effort: команда уже применена и сохранена,
// проблемы с уведомлениями не критичны и не прерывают выполнение
func (c *CommandService) report(ctx context.Context, eventType, entityType string, entityID int64, severity entity.Severity, message string) {
	event := entity.NotificationEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		EntityID:  entityID,
		Severity:  severity,
		Message:   message,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal notification event")
	} else if err := c.publisher.PublishMessage(ctx, event.EventID, data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Msg("Failed to publish notification event")
	}

	if c.audit == nil {
		return
	}

	entry := &entity.AuditEntry{
		Command:    eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Severity:   severity,
		Message:    message,
		CreatedAt:  event.Timestamp,
	}
	if err := c.audit.Record(ctx, entry); err != nil {
		logger.Warn().
			Err(err).
			Str("command", eventType).
			Msg("Failed to record audit entry")
	}
}
