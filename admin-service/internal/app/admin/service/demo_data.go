package service

import (
	"time"

	"wayfarer/admin-service/internal/app/admin/entity"
)

// DemoData возвращает демонстрационный набор: две локации и два отзыва
// (один одобренный, один на модерации). Используется командой сидирования
// для наполнения пустой инсталляции
func DemoData() ([]entity.Location, []entity.Review) {
	now := time.Now()

	locations := []entity.Location{
		{
			ID:          1,
			Name:        "Central Park",
			Category:    "attraction",
			Status:      entity.LocationStatusActive,
			Address:     "123 Park Avenue, New York, NY 10001",
			Phone:       "+1-555-0123",
			Email:       "info@centralpark.com",
			Description: "Beautiful urban park perfect for walking, picnicking, and outdoor activities.",
			PriceRange:  "$",
			Hours:       "6:00 AM - 10:00 PM",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Name:        "Downtown Grill",
			Category:    "restaurant",
			Status:      entity.LocationStatusActive,
			Address:     "456 Main Street, Downtown, NY 10002",
			Phone:       "+1-555-0456",
			Email:       "reservations@downtowngrill.com",
			Description: "Fine dining restaurant featuring local cuisine and seasonal ingredients.",
			PriceRange:  "$$$",
			Hours:       "11:00 AM - 11:00 PM",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	reviews := []entity.Review{
		{
			ID:           1,
			LocationID:   1,
			ReviewerName: "John Smith",
			Rating:       5,
			ReviewText:   "Amazing park! Perfect for family outings and the scenery is breathtaking.",
			Status:       entity.ReviewStatusApproved,
			CreatedAt:    now.Add(-24 * time.Hour),
			UpdatedAt:    now.Add(-24 * time.Hour),
		},
		{
			ID:           2,
			LocationID:   2,
			ReviewerName: "Sarah Johnson",
			Rating:       4,
			ReviewText:   "Great food and excellent service. The atmosphere is cozy and welcoming.",
			Status:       entity.ReviewStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	return locations, reviews
}
