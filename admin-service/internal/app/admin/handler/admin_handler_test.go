package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/admin-service/internal/app/admin/repository/mocks"
	"wayfarer/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	router    *gin.Engine
	store     *mocks.MockStoreRepository
	publisher *mocks.MockMessagePublisher
	audit     *mocks.MockAuditRepository
	state     *service.CatalogState
}

func newHandlerFixture(locations []entity.Location, reviews []entity.Review) *handlerFixture {
	store := new(mocks.MockStoreRepository)
	publisher := new(mocks.MockMessagePublisher)
	audit := new(mocks.MockAuditRepository)

	state := service.NewCatalogState()
	state.Reset(locations, reviews)

	catalog := service.NewCatalogService(state)
	commands := service.NewCommandService(state, store, publisher, audit)

	return &handlerFixture{
		router:    SetupRouter(NewAdminHandler(catalog, commands, audit)),
		store:     store,
		publisher: publisher,
		audit:     audit,
		state:     state,
	}
}

func (f *handlerFixture) allowSideEffects() {
	f.store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.store.On("Clear", mock.Anything).Return(nil)
	f.publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.audit.On("Record", mock.Anything, mock.Anything).Return(nil)
}

func (f *handlerFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGetLocations_ReturnsProjection(t *testing.T) {
	f := newHandlerFixture(
		[]entity.Location{
			{ID: 1, Name: "Central Park", Category: "attraction"},
			{ID: 2, Name: "Downtown Grill", Category: "restaurant"},
		},
		[]entity.Review{
			{ID: 10, LocationID: 1, Rating: 4, Status: entity.ReviewStatusApproved},
		},
	)

	w := f.do(http.MethodGet, "/locations", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var projection service.LocationProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	require.Len(t, projection.Rows, 2)
	assert.Equal(t, "Central Park", projection.Rows[0].Name)
	assert.InDelta(t, 4.0, projection.Rows[0].Rating, 0.001)
	assert.Equal(t, "★★★★☆", projection.Rows[0].RatingStars)
}

func TestGetLocations_AppliesFilters(t *testing.T) {
	f := newHandlerFixture(
		[]entity.Location{
			{ID: 1, Name: "Central Park", Category: "attraction"},
			{ID: 2, Name: "Parkside Hotel", Category: "hotel"},
		},
		nil,
	)

	w := f.do(http.MethodGet, "/locations?search=park&category=hotel", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var projection service.LocationProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	require.Len(t, projection.Rows, 1)
	assert.Equal(t, "Parkside Hotel", projection.Rows[0].Name)
}

func TestGetLocations_EmptyState(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	w := f.do(http.MethodGet, "/locations", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var projection service.LocationProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	assert.True(t, projection.Empty)
	assert.Equal(t, service.EmptyReasonNoData, projection.EmptyReason)
	assert.Equal(t, "No locations added yet", projection.EmptyMessage)
}

func TestCreateLocation_Success(t *testing.T) {
	f := newHandlerFixture(nil, nil)
	f.allowSideEffects()

	w := f.do(http.MethodPost, "/locations", map[string]interface{}{
		"name":     "Central Park",
		"category": "attraction",
		"address":  "Central Park, New York, NY",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var location entity.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
	assert.NotZero(t, location.ID)
	assert.Equal(t, entity.LocationStatusActive, location.Status)
}

func TestCreateLocation_ValidationFailed(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	// name обязателен
	w := f.do(http.MethodPost, "/locations", map[string]interface{}{
		"category": "attraction",
		"address":  "Somewhere",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	f := newHandlerFixture(nil, nil)
	f.allowSideEffects()

	w := f.do(http.MethodPut, "/locations/404", map[string]interface{}{
		"name":     "Ghost",
		"category": "attraction",
		"address":  "Nowhere",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateLocation_InvalidID(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	w := f.do(http.MethodPut, "/locations/abc", map[string]interface{}{
		"name":     "Ghost",
		"category": "attraction",
		"address":  "Nowhere",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLocation_IdempotentOnMissingID(t *testing.T) {
	f := newHandlerFixture(nil, nil)
	f.allowSideEffects()

	w := f.do(http.MethodDelete, "/locations/404", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetReviews_FiltersByStatusAndRating(t *testing.T) {
	f := newHandlerFixture(
		[]entity.Location{{ID: 1, Name: "Central Park"}},
		[]entity.Review{
			{ID: 10, LocationID: 1, ReviewerName: "John Smith", Rating: 5, Status: entity.ReviewStatusApproved},
			{ID: 11, LocationID: 1, ReviewerName: "Sarah Johnson", Rating: 4, Status: entity.ReviewStatusPending},
		},
	)

	w := f.do(http.MethodGet, "/reviews?status=pending&rating=4", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var projection service.ReviewProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	require.Len(t, projection.Rows, 1)
	assert.Equal(t, "Sarah Johnson", projection.Rows[0].ReviewerName)
	assert.Equal(t, "Central Park", projection.Rows[0].LocationName)
}

func TestGetReviews_InvalidRatingFilter(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	w := f.do(http.MethodGet, "/reviews?rating=banana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/reviews?rating=7", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetReviewStatus_Approve(t *testing.T) {
	f := newHandlerFixture(
		nil,
		[]entity.Review{{ID: 10, LocationID: 1, Rating: 5, Status: entity.ReviewStatusPending}},
	)
	f.allowSideEffects()

	w := f.do(http.MethodPut, "/reviews/10/status", map[string]interface{}{
		"status": "approved",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var review entity.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.Equal(t, entity.ReviewStatusApproved, review.Status)
}

func TestSetReviewStatus_PendingRejected(t *testing.T) {
	f := newHandlerFixture(
		nil,
		[]entity.Review{{ID: 10, Status: entity.ReviewStatusApproved}},
	)

	// В конечный статус можно перевести только approved/rejected
	w := f.do(http.MethodPut, "/reviews/10/status", map[string]interface{}{
		"status": "pending",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReview_NotFound(t *testing.T) {
	f := newHandlerFixture(nil, nil)
	f.allowSideEffects()

	w := f.do(http.MethodPut, "/reviews/404", map[string]interface{}{
		"rating":     3,
		"reviewText": "text",
		"status":     "pending",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDashboardStats(t *testing.T) {
	f := newHandlerFixture(
		[]entity.Location{{ID: 1}},
		[]entity.Review{
			{ID: 10, Status: entity.ReviewStatusPending},
			{ID: 11, Status: entity.ReviewStatusApproved},
		},
	)

	w := f.do(http.MethodGet, "/dashboard/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var stats entity.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalLocations)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 1, stats.PendingReviews)
}

func TestSeedDemoData(t *testing.T) {
	f := newHandlerFixture(nil, nil)
	f.allowSideEffects()

	w := f.do(http.MethodPost, "/admin/demo-data", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/locations", nil)
	var projection service.LocationProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	assert.Len(t, projection.Rows, 2)
}

func TestClearAllData(t *testing.T) {
	f := newHandlerFixture(
		[]entity.Location{{ID: 1, Name: "Central Park"}},
		nil,
	)
	f.allowSideEffects()

	w := f.do(http.MethodDelete, "/admin/data", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/locations", nil)
	var projection service.LocationProjection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	assert.True(t, projection.Empty)
	assert.Equal(t, service.EmptyReasonNoData, projection.EmptyReason)
}

func TestGetAuditLog(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	entries := []entity.AuditEntry{{Command: "LOCATION_CREATED", EntityType: "location", EntityID: 1}}
	f.audit.On("Recent", mock.Anything, 50).Return(entries, nil)

	w := f.do(http.MethodGet, "/admin/audit", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response entity.AuditListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "LOCATION_CREATED", response.Entries[0].Command)
}

func TestGetAuditLog_InvalidLimit(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	w := f.do(http.MethodGet, "/admin/audit?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	f := newHandlerFixture(nil, nil)

	w := f.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
