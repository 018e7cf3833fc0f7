//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/admin-service/internal/app/admin/handler"
	"wayfarer/admin-service/internal/app/admin/repository"
	"wayfarer/admin-service/internal/app/admin/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// noopPublisher заменяет Kafka в интеграционных тестах:
// уведомления best-effort и на исход команд не влияют
type noopPublisher struct{}

func (noopPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	return nil
}

func (noopPublisher) Close() error { return nil }

// AdminIntegrationSuite поднимает полный стек сервиса поверх miniredis:
// репозиторий, состояние, сервисы и HTTP router
type AdminIntegrationSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	store  repository.StoreRepository
	server *httptest.Server
}

func (s *AdminIntegrationSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.store = repository.NewRedisStoreRepositoryWithClient(client)

	state := service.NewCatalogState()
	catalog := service.NewCatalogService(state)
	commands := service.NewCommandService(state, s.store, noopPublisher{}, nil)
	s.Require().NoError(commands.Load(context.Background()))

	router := handler.SetupRouter(handler.NewAdminHandler(catalog, commands, nil))
	s.server = httptest.NewServer(router)
}

func (s *AdminIntegrationSuite) TearDownTest() {
	s.server.Close()
	s.store.Close()
	s.mr.Close()
}

func (s *AdminIntegrationSuite) request(method, path string, body interface{}) (*http.Response, []byte) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	s.Require().NoError(err)

	return resp, buf.Bytes()
}

func (s *AdminIntegrationSuite) createLocation(name, category string) entity.Location {
	resp, body := s.request(http.MethodPost, "/locations", map[string]interface{}{
		"name":     name,
		"category": category,
		"address":  "123 Test St",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var location entity.Location
	s.Require().NoError(json.Unmarshal(body, &location))
	return location
}

func (s *AdminIntegrationSuite) TestLocationLifecyclePersistsToStore() {
	location := s.createLocation("Central Park", "attraction")

	// Коллекция записана в Redis целиком под фиксированным ключом
	raw, err := s.mr.Get(repository.LocationsStoreKey)
	s.Require().NoError(err)

	var stored []entity.Location
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Require().Len(stored, 1)
	s.Equal(location.ID, stored[0].ID)

	// Обновление
	resp, body := s.request(http.MethodPut, fmt.Sprintf("/locations/%d", location.ID), map[string]interface{}{
		"name":     "Central Park Renamed",
		"category": "attraction",
		"address":  "123 Test St",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated entity.Location
	s.Require().NoError(json.Unmarshal(body, &updated))
	s.Equal(location.ID, updated.ID)
	s.Equal("Central Park Renamed", updated.Name)

	// Удаление
	resp, _ = s.request(http.MethodDelete, fmt.Sprintf("/locations/%d", location.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	raw, err = s.mr.Get(repository.LocationsStoreKey)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Empty(stored)
}

func (s *AdminIntegrationSuite) TestStateSurvivesRestart() {
	location := s.createLocation("Central Park", "attraction")

	// Пересобираем стек над тем же Redis: состояние загружается заново
	state := service.NewCatalogState()
	catalog := service.NewCatalogService(state)
	commands := service.NewCommandService(state, s.store, noopPublisher{}, nil)
	s.Require().NoError(commands.Load(context.Background()))

	projection := catalog.ProjectLocations(service.LocationFilters{})
	s.Require().Len(projection.Rows, 1)
	s.Equal(location.ID, projection.Rows[0].ID)
}

func (s *AdminIntegrationSuite) TestModerationChangesLocationRating() {
	s.createLocation("Central Park", "attraction")

	resp, _ := s.request(http.MethodPost, "/admin/demo-data", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// В демо-наборе у Downtown Grill один pending отзыв с оценкой 4
	resp, body := s.request(http.MethodGet, "/reviews?status=pending", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var reviews service.ReviewProjection
	s.Require().NoError(json.Unmarshal(body, &reviews))
	s.Require().Len(reviews.Rows, 1)
	pending := reviews.Rows[0]

	resp, body = s.request(http.MethodGet, "/locations?search=grill", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var locations service.LocationProjection
	s.Require().NoError(json.Unmarshal(body, &locations))
	s.Require().Len(locations.Rows, 1)
	s.Equal(0.0, locations.Rows[0].Rating)

	// Одобряем отзыв - рейтинг локации пересчитывается
	resp, _ = s.request(http.MethodPut, fmt.Sprintf("/reviews/%d/status", pending.ID), map[string]interface{}{
		"status": "approved",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, body = s.request(http.MethodGet, "/locations?search=grill", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NoError(json.Unmarshal(body, &locations))
	s.Require().Len(locations.Rows, 1)
	s.InDelta(4.0, locations.Rows[0].Rating, 0.001)
	s.Equal("4.0/5", locations.Rows[0].RatingText)
}

func (s *AdminIntegrationSuite) TestDeletedLocationLeavesOrphanReviews() {
	resp, _ := s.request(http.MethodPost, "/admin/demo-data", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	_, body := s.request(http.MethodGet, "/locations?search=central", nil)
	var locations service.LocationProjection
	s.Require().NoError(json.Unmarshal(body, &locations))
	s.Require().Len(locations.Rows, 1)

	resp, _ = s.request(http.MethodDelete, fmt.Sprintf("/locations/%d", locations.Rows[0].ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// Отзыв осиротевшей локации остается и показывается с "Unknown Location"
	_, body = s.request(http.MethodGet, "/reviews?search=unknown", nil)
	var reviews service.ReviewProjection
	s.Require().NoError(json.Unmarshal(body, &reviews))
	s.Require().Len(reviews.Rows, 1)
	s.Equal(entity.UnknownLocationName, reviews.Rows[0].LocationName)
}

func (s *AdminIntegrationSuite) TestClearAllDataRemovesStoreKeys() {
	s.createLocation("Central Park", "attraction")

	resp, _ := s.request(http.MethodDelete, "/admin/data", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.False(s.mr.Exists(repository.LocationsStoreKey))
	s.False(s.mr.Exists(repository.ReviewsStoreKey))

	_, body := s.request(http.MethodGet, "/locations", nil)
	var projection service.LocationProjection
	s.Require().NoError(json.Unmarshal(body, &projection))
	s.True(projection.Empty)
	s.Equal("No locations added yet", projection.EmptyMessage)
}

func TestAdminIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AdminIntegrationSuite))
}
