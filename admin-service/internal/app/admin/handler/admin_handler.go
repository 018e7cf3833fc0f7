package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/admin-service/internal/app/admin/repository"
	"wayfarer/admin-service/internal/app/admin/service"
	"wayfarer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogReader определяет read-only операции каталога для handlers
type CatalogReader interface {
	ProjectLocations(f service.LocationFilters) service.LocationProjection
	ProjectReviews(f service.ReviewFilters) service.ReviewProjection
	Stats() entity.DashboardStats
}

// CommandRunner определяет admin-команды для handlers
type CommandRunner interface {
	CreateLocation(ctx context.Context, req *entity.CreateLocationRequest) (*entity.Location, error)
	UpdateLocation(ctx context.Context, id int64, req *entity.UpdateLocationRequest) (*entity.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
	UpdateReview(ctx context.Context, id int64, req *entity.UpdateReviewRequest) (*entity.Review, error)
	SetReviewStatus(ctx context.Context, id int64, status entity.ReviewStatus) (*entity.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	SeedDemoData(ctx context.Context) error
	ClearAllData(ctx context.Context) error
}

// AdminHandler обрабатывает HTTP запросы админки
type AdminHandler struct {
	catalog   CatalogReader
	commands  CommandRunner
	audit     repository.AuditRepository
	validator *validator.Validate
}

// NewAdminHandler создает новый обработчик админки
func NewAdminHandler(catalog CatalogReader, commands CommandRunner, audit repository.AuditRepository) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		commands:  commands,
		audit:     audit,
		validator: validator.New(),
	}
}

// GetLocations возвращает проекцию локаций с учетом фильтров
// GET /locations?search=&category=
func (h *AdminHandler) GetLocations(c *gin.Context) {
	filters := service.LocationFilters{
		Query:    c.Query("search"),
		Category: c.Query("category"),
	}

	c.JSON(http.StatusOK, h.catalog.ProjectLocations(filters))
}

// CreateLocation создает новую локацию
// POST /locations
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req entity.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
		})
		return
	}

	location, err := h.commands.CreateLocation(c.Request.Context(), &req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create location")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to create location",
		})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// UpdateLocation обновляет существующую локацию
// PUT /locations/:id
func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid location id"})
		return
	}

	var req entity.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
		})
		return
	}

	location, err := h.commands.UpdateLocation(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "location not found"})
			return
		}
		logger.Error().Err(err).Int64("location_id", id).Msg("Failed to update location")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to update location",
		})
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation удаляет локацию. Удаление идемпотентно:
// отсутствующий id тоже дает 200
// DELETE /locations/:id
func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid location id"})
		return
	}

	if err := h.commands.DeleteLocation(c.Request.Context(), id); err != nil {
		logger.Error().Err(err).Int64("location_id", id).Msg("Failed to delete location")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to delete location",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Location deleted successfully!"})
}

// GetReviews возвращает проекцию отзывов с учетом фильтров
// GET /reviews?search=&status=&rating=
func (h *AdminHandler) GetReviews(c *gin.Context) {
	filters := service.ReviewFilters{
		Query:  c.Query("search"),
		Status: c.Query("status"),
	}

	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid rating filter"})
			return
		}
		filters.Rating = rating
	}

	c.JSON(http.StatusOK, h.catalog.ProjectReviews(filters))
}

// UpdateReview редактирует отзыв
// PUT /reviews/:id
func (h *AdminHandler) UpdateReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid review id"})
		return
	}

	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
		})
		return
	}

	review, err := h.commands.UpdateReview(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "review not found"})
			return
		}
		logger.Error().Err(err).Int64("review_id", id).Msg("Failed to update review")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to update review",
		})
		return
	}

	c.JSON(http.StatusOK, review)
}

// SetReviewStatus переводит отзыв в approved или rejected
// PUT /reviews/:id/status
func (h *AdminHandler) SetReviewStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid review id"})
		return
	}

	var req entity.SetReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
		})
		return
	}

	review, err := h.commands.SetReviewStatus(c.Request.Context(), id, entity.ReviewStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "review not found"})
			return
		}
		logger.Error().Err(err).Int64("review_id", id).Msg("Failed to moderate review")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to moderate review",
		})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview удаляет отзыв. Удаление идемпотентно
// DELETE /reviews/:id
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid review id"})
		return
	}

	if err := h.commands.DeleteReview(c.Request.Context(), id); err != nil {
		logger.Error().Err(err).Int64("review_id", id).Msg("Failed to delete review")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to delete review",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Review deleted successfully!"})
}

// GetDashboardStats возвращает сводную статистику каталога
// GET /dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

// SeedDemoData заменяет обе коллекции демонстрационным набором
// POST /admin/demo-data
func (h *AdminHandler) SeedDemoData(c *gin.Context) {
	if err := h.commands.SeedDemoData(c.Request.Context()); err != nil {
		logger.Error().Err(err).Msg("Failed to seed demo data")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to seed demo data",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Demo data added successfully!"})
}

// ClearAllData удаляет все данные каталога
// DELETE /admin/data
func (h *AdminHandler) ClearAllData(c *gin.Context) {
	if err := h.commands.ClearAllData(c.Request.Context()); err != nil {
		logger.Error().Err(err).Msg("Failed to clear data")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to clear data",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "All data cleared successfully!"})
}

// GetAuditLog возвращает последние записи журнала действий
// GET /admin/audit?limit=
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	if h.audit == nil {
		c.JSON(http.StatusOK, entity.AuditListResponse{Entries: []entity.AuditEntry{}})
		return
	}

	entries, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read audit log")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: "failed to read audit log",
		})
		return
	}

	c.JSON(http.StatusOK, entity.AuditListResponse{Entries: entries, Total: len(entries)})
}

// HealthCheck возвращает статус сервиса
// GET /health
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "admin-service",
	})
}
