package dto

import (
	"time"

	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/service"
)

// TripRequest is the create/update payload for trips.
type TripRequest struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	GuideID   *int64    `json:"guideId,omitempty"`
}

// TripResponse is the serialized trip, optionally enriched with the
// packing list for its category.
type TripResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	StartTime    time.Time             `json:"startTime"`
	EndTime      time.Time             `json:"endTime"`
	Longitude    float64               `json:"longitude"`
	Latitude     float64               `json:"latitude"`
	Price        float64               `json:"price"`
	Category     domain.Category       `json:"category"`
	GuideID      *int64                `json:"guideId,omitempty"`
	PackingItems []service.PackingItem `json:"packingItems,omitempty"`
}

// FromTrip maps a domain trip to its response shape.
func FromTrip(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:        trip.ID,
		Name:      trip.Name,
		StartTime: trip.StartTime,
		EndTime:   trip.EndTime,
		Longitude: trip.Longitude,
		Latitude:  trip.Latitude,
		Price:     trip.Price,
		Category:  trip.Category,
		GuideID:   trip.GuideID,
	}
}

// FromTrips maps a slice of domain trips.
func FromTrips(trips []domain.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, FromTrip(&trips[i]))
	}
	return out
}
