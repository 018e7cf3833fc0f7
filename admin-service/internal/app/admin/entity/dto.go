package entity

// CreateLocationRequest - запрос на создание локации
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive pending"`
	Address     string `json:"address" validate:"required,min=2,max=300"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceRange  string `json:"priceRange" validate:"omitempty,max=10"`
	Hours       string `json:"hours" validate:"omitempty,max=100"`
}

// UpdateLocationRequest - запрос на обновление локации
// Заменяет все изменяемые поля целиком, id и createdAt сохраняются
type UpdateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive pending"`
	Address     string `json:"address" validate:"required,min=2,max=300"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceRange  string `json:"priceRange" validate:"omitempty,max=10"`
	Hours       string `json:"hours" validate:"omitempty,max=100"`
}

// UpdateReviewRequest - запрос на редактирование отзыва модератором
type UpdateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required,min=1,max=2000"`
	Status     string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// SetReviewStatusRequest - запрос на смену статуса модерации
// Допускаются только конечные решения approved/rejected
type SetReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuditListResponse - ответ со списком записей журнала
type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
	Total   int          `json:"total"`
}
