package service

import (
	"fmt"
	"strings"

	"wayfarer/admin-service/internal/app/admin/entity"
)

// EmptyReason объясняет, почему видимое подмножество пусто:
// коллекция пуста сама по себе или активные критерии все отфильтровали.
// Два случая отображаются с разными подсказками
type EmptyReason string

const (
	EmptyReasonNoData  EmptyReason = "no_data"
	EmptyReasonNoMatch EmptyReason = "no_match"
)

// Тексты подсказок для пустых состояний таблиц
const (
	emptyLocationsMessage      = "No locations added yet"
	noMatchingLocationsMessage = "No locations match your search criteria"
	emptyReviewsMessage        = "No reviews submitted yet"
	noMatchingReviewsMessage   = "No reviews match your search criteria"
	anonymousReviewerName      = "Anonymous"
)

// LocationFilters - критерии отбора локаций
// Query ищется как подстрока без учета регистра в name/address/category,
// Category сравнивается точно; пустое значение означает "все"
type LocationFilters struct {
	Query    string
	Category string
}

// ReviewFilters - критерии отбора отзывов
// Query ищется в reviewerName/reviewText и в разрешенном имени локации
// (не в сыром locationId). Rating 0 означает "все"
type ReviewFilters struct {
	Query  string
	Status string
	Rating int
}

// LocationRow - готовая к отображению строка таблицы локаций
// Рейтинг всегда вычисляется в момент проекции, на записи он не хранится
type LocationRow struct {
	entity.Location
	Rating      float64 `json:"rating"`
	RatingStars string  `json:"ratingStars"`
	RatingText  string  `json:"ratingText"`
}

// LocationProjection - видимое подмножество локаций плюс пустое состояние
type LocationProjection struct {
	Rows         []LocationRow `json:"rows"`
	Total        int           `json:"total"`
	Empty        bool          `json:"empty"`
	EmptyReason  EmptyReason   `json:"empty_reason,omitempty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// ReviewRow - готовая к отображению строка таблицы отзывов
// ReviewerName в строке уже с подставленным "Anonymous" (в хранилище
// значение по умолчанию не записывается)
type ReviewRow struct {
	entity.Review
	LocationName string `json:"locationName"`
	RatingStars  string `json:"ratingStars"`
	RatingText   string `json:"ratingText"`
}

// ReviewProjection - видимое подмножество отзывов плюс пустое состояние
type ReviewProjection struct {
	Rows         []ReviewRow `json:"rows"`
	Total        int         `json:"total"`
	Empty        bool        `json:"empty"`
	EmptyReason  EmptyReason `json:"empty_reason,omitempty"`
	EmptyMessage string      `json:"empty_message,omitempty"`
}

// ProjectLocations строит проекцию коллекции локаций: чистая функция,
// детерминированная и без побочных эффектов, ее можно вызывать на каждое
// изменение фильтров без перезагрузки данных
//
// Запись видима если она совпадает с текстовым запросом (подстрока хотя бы
// в одном из полей name/address/category) И с каждым активным дискретным
// фильтром. Порядок добавления сохраняется, независимой сортировки нет
func ProjectLocations(locations []entity.Location, f LocationFilters, ratingOf func(int64) float64) LocationProjection {
	query := strings.ToLower(f.Query)

	rows := make([]LocationRow, 0, len(locations))
	for _, l := range locations {
		if !locationMatchesQuery(l, query) {
			continue
		}
		if f.Category != "" && l.Category != f.Category {
			continue
		}

		rating := ratingOf(l.ID)
		rows = append(rows, LocationRow{
			Location:    l,
			Rating:      rating,
			RatingStars: RatingStars(rating),
			RatingText:  fmt.Sprintf("%.1f/5", rating),
		})
	}

	projection := LocationProjection{Rows: rows, Total: len(rows)}
	if len(rows) == 0 {
		projection.Empty = true
		if f.Query != "" || f.Category != "" {
			projection.EmptyReason = EmptyReasonNoMatch
			projection.EmptyMessage = noMatchingLocationsMessage
		} else {
			projection.EmptyReason = EmptyReasonNoData
			projection.EmptyMessage = emptyLocationsMessage
		}
	}

	return projection
}

// ProjectReviews строит проекцию коллекции отзывов
// Текстовый запрос ищется в имени рецензента, тексте отзыва и в
// разрешенном через nameOf имени локации. Рейтинг-фильтр сравнивается
// как число, не как подстрока
func ProjectReviews(reviews []entity.Review, f ReviewFilters, nameOf func(int64) string) ReviewProjection {
	query := strings.ToLower(f.Query)

	rows := make([]ReviewRow, 0, len(reviews))
	for _, r := range reviews {
		locationName := nameOf(r.LocationID)

		if !reviewMatchesQuery(r, locationName, query) {
			continue
		}
		if f.Status != "" && string(r.Status) != f.Status {
			continue
		}
		if f.Rating != 0 && r.Rating != f.Rating {
			continue
		}

		// Значение по умолчанию подставляется только при отображении
		if r.ReviewerName == "" {
			r.ReviewerName = anonymousReviewerName
		}

		rows = append(rows, ReviewRow{
			Review:       r,
			LocationName: locationName,
			RatingStars:  RatingStars(float64(r.Rating)),
			RatingText:   fmt.Sprintf("%d/5", r.Rating),
		})
	}

	projection := ReviewProjection{Rows: rows, Total: len(rows)}
	if len(rows) == 0 {
		projection.Empty = true
		if f.Query != "" || f.Status != "" || f.Rating != 0 {
			projection.EmptyReason = EmptyReasonNoMatch
			projection.EmptyMessage = noMatchingReviewsMessage
		} else {
			projection.EmptyReason = EmptyReasonNoData
			projection.EmptyMessage = emptyReviewsMessage
		}
	}

	return projection
}

// locationMatchesQuery проверяет вхождение запроса хотя бы в одно поле
// Пустой запрос совпадает со всем
func locationMatchesQuery(l entity.Location, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), query) ||
		strings.Contains(strings.ToLower(l.Address), query) ||
		strings.Contains(strings.ToLower(l.Category), query)
}

func reviewMatchesQuery(r entity.Review, locationName, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ReviewerName), query) ||
		strings.Contains(strings.ToLower(r.ReviewText), query) ||
		strings.Contains(strings.ToLower(locationName), query)
}

// RatingStars возвращает строку из пяти звезд: позиция закрашена,
// если она не превышает оценку (дробная часть отбрасывается вниз,
// 4.6 дает четыре закрашенные звезды)
func RatingStars(rating float64) string {
	var b strings.Builder
	for i := 1; i <= 5; i++ {
		if float64(i) <= rating {
			b.WriteRune('★')
		} else {
			b.WriteRune('☆')
		}
	}
	return b.String()
}
