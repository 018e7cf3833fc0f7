package service

import (
	"wayfarer/admin-service/internal/app/admin/entity"
)

// CatalogService вычисляет производные значения над коллекциями,
// не изменяя их: рейтинги локаций, разрешение имен, сводную статистику
// и проекции для отображения
type CatalogService struct {
	state *CatalogState
}

// NewCatalogService создает сервис каталога над общим состоянием
func NewCatalogService(state *CatalogState) *CatalogService {
	return &CatalogService{state: state}
}

// RatingOf возвращает средний рейтинг локации по одобренным отзывам
// Отзывы со статусом pending и rejected не учитываются. Если одобренных
// отзывов нет - возвращает 0. Пересчитывается при каждом вызове,
// кеширования нет: коллекции малы, свежесть важнее
func (s *CatalogService) RatingOf(locationID int64) float64 {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return s.ratingOfLocked(locationID)
}

// ratingOfLocked - вариант RatingOf для вызова под уже взятым lock
func (s *CatalogService) ratingOfLocked(locationID int64) float64 {
	total := 0
	count := 0
	for _, r := range s.state.reviews {
		if r.LocationID == locationID && r.Status == entity.ReviewStatusApproved {
			total += r.Rating
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return float64(total) / float64(count)
}

// NameOf возвращает имя локации по идентификатору
// Висячая ссылка (локация удалена) не является ошибкой:
// возвращается "Unknown Location"
func (s *CatalogService) NameOf(locationID int64) string {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return s.nameOfLocked(locationID)
}

func (s *CatalogService) nameOfLocked(locationID int64) string {
	for _, l := range s.state.locations {
		if l.ID == locationID {
			return l.Name
		}
	}
	return entity.UnknownLocationName
}

// Stats возвращает сводную статистику для дашборда
func (s *CatalogService) Stats() entity.DashboardStats {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	stats := entity.DashboardStats{
		TotalLocations: len(s.state.locations),
		TotalReviews:   len(s.state.reviews),
	}

	for _, r := range s.state.reviews {
		switch r.Status {
		case entity.ReviewStatusPending:
			stats.PendingReviews++
		case entity.ReviewStatusApproved:
			stats.ApprovedReviews++
		case entity.ReviewStatusRejected:
			stats.RejectedReviews++
		}
	}

	return stats
}

// Locations возвращает копию коллекции локаций в порядке добавления
func (s *CatalogService) Locations() []entity.Location {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	locations := make([]entity.Location, len(s.state.locations))
	copy(locations, s.state.locations)
	return locations
}

// Reviews возвращает копию коллекции отзывов в порядке добавления
func (s *CatalogService) Reviews() []entity.Review {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	reviews := make([]entity.Review, len(s.state.reviews))
	copy(reviews, s.state.reviews)
	return reviews
}

// ProjectLocations строит проекцию локаций под одним read lock,
// чтобы строки и рейтинги считались по согласованному снимку коллекций
func (s *CatalogService) ProjectLocations(f LocationFilters) LocationProjection {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return ProjectLocations(s.state.locations, f, s.ratingOfLocked)
}

// ProjectReviews строит проекцию отзывов под одним read lock
func (s *CatalogService) ProjectReviews(f ReviewFilters) ReviewProjection {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return ProjectReviews(s.state.reviews, f, s.nameOfLocked)
}
