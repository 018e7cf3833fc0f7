package entity

import "time"

// LocationStatus - статус локации в каталоге
type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "active"
	LocationStatusInactive LocationStatus = "inactive"
	LocationStatusPending  LocationStatus = "pending"
)

// ReviewStatus - статус модерации отзыва
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// UnknownLocationName возвращается вместо имени локации при висячей ссылке
// (отзыв ссылается на удаленную локацию)
const UnknownLocationName = "Unknown Location"

// Location представляет туристическую локацию в каталоге
// JSON-теги совпадают с форматом хранения: коллекция сериализуется целиком
// под фиксированным ключом, без тега версии
type Location struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"` // attraction, restaurant, hotel и т.д.
	Status      LocationStatus `json:"status"`
	Address     string         `json:"address"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Description string         `json:"description"`
	PriceRange  string         `json:"priceRange"` // "$", "$$", "$$$"
	Hours       string         `json:"hours"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Review представляет пользовательский отзыв о локации
// LocationID не проверяется на существование: отзыв о удаленной локации
// остается в коллекции и отображается с именем "Unknown Location"
type Review struct {
	ID           int64        `json:"id"`
	LocationID   int64        `json:"locationId"`
	ReviewerName string       `json:"reviewerName"` // пустое имя отображается как "Anonymous"
	Rating       int          `json:"rating"`       // Оценка от 1 до 5
	ReviewText   string       `json:"reviewText"`
	Status       ReviewStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DashboardStats - сводная статистика для дашборда администратора
type DashboardStats struct {
	TotalLocations  int `json:"total_locations"`
	TotalReviews    int `json:"total_reviews"`
	PendingReviews  int `json:"pending_reviews"`
	ApprovedReviews int `json:"approved_reviews"`
	RejectedReviews int `json:"rejected_reviews"`
}

// Severity - важность уведомления об исходе команды
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// NotificationEvent представляет событие об исходе admin-команды для Kafka
// Коллаборатор уведомлений (UI toast, алертинг) подписан на этот топик
type NotificationEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"` // LOCATION_CREATED, REVIEW_APPROVED и т.д.
	EntityID  int64     `json:"entity_id,omitempty"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditEntry - запись в журнале действий администратора
// Хранится в MongoDB, пишется best-effort после каждой команды
type AuditEntry struct {
	Command    string    `json:"command" bson:"command"`
	EntityType string    `json:"entity_type" bson:"entity_type"` // location или review
	EntityID   int64     `json:"entity_id" bson:"entity_id"`
	Severity   Severity  `json:"severity" bson:"severity"`
	Message    string    `json:"message" bson:"message"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
