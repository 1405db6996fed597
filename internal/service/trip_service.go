package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/events"
	"github.com/spec-kit/trip-service/internal/repository"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// TripService owns trip CRUD and packing enrichment. It runs strictly
// after the authorization stage and carries no security logic.
type TripService struct {
	trips      repository.TripRepository
	guides     repository.GuideRepository
	packing    PackingClient
	dispatcher events.Dispatcher
}

// NewTripService builds the service.
func NewTripService(trips repository.TripRepository, guides repository.GuideRepository, packing PackingClient, dispatcher events.Dispatcher) *TripService {
	return &TripService{trips: trips, guides: guides, packing: packing, dispatcher: dispatcher}
}

// Create validates the referenced guide and persists the trip.
func (s *TripService) Create(ctx context.Context, trip *domain.Trip, actor string) error {
	if trip.GuideID != nil {
		if _, err := s.guides.GetByID(ctx, *trip.GuideID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError(fmt.Sprintf("guide with id %d not found", *trip.GuideID))
			}
			return apperrors.NewInternalError(err)
		}
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventTripCreated, actor, events.TripCreatedPayload{
		TripID:   trip.ID,
		Name:     trip.Name,
		Category: trip.Category,
		GuideID:  trip.GuideID,
	})
	return nil
}

// GetByID fetches one trip.
func (s *TripService) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("trip")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return trip, nil
}

// List returns all trips.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return trips, nil
}

// FilterByCategory returns trips in the given category. An unknown
// category is a caller error.
func (s *TripService) FilterByCategory(ctx context.Context, category string) ([]domain.Trip, error) {
	parsed, ok := domain.ParseCategory(category)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid category: %s", category))
	}
	trips, err := s.trips.ListByCategory(ctx, parsed)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return trips, nil
}

// Update overwrites an existing trip's fields.
func (s *TripService) Update(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	existing, err := s.GetByID(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = trip.Name
	existing.StartTime = trip.StartTime
	existing.EndTime = trip.EndTime
	existing.Longitude = trip.Longitude
	existing.Latitude = trip.Latitude
	existing.Price = trip.Price
	existing.Category = trip.Category
	if trip.GuideID != nil {
		if _, err := s.guides.GetByID(ctx, *trip.GuideID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("guide with id %d not found", *trip.GuideID))
			}
			return nil, apperrors.NewInternalError(err)
		}
		existing.GuideID = trip.GuideID
	}

	if err := s.trips.Update(ctx, existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("trip")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return existing, nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("trip")
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventTripDeleted, actor, events.TripDeletedPayload{TripID: id})
	return nil
}

// LinkGuide attaches a guide to a trip.
func (s *TripService) LinkGuide(ctx context.Context, tripID, guideID int64, actor string) (*domain.Trip, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guides.GetByID(ctx, guideID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("guide")
		}
		return nil, apperrors.NewInternalError(err)
	}

	trip.GuideID = &guideID
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventGuideLinked, actor, events.GuideLinkedPayload{
		TripID:  tripID,
		GuideID: guideID,
	})
	return trip, nil
}

// TotalPriceByGuide sums trip prices grouped by guide. Trips without a
// guide are skipped.
func (s *TripService) TotalPriceByGuide(ctx context.Context) (map[int64]float64, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	totals := make(map[int64]float64)
	for _, trip := range trips {
		if trip.GuideID == nil {
			continue
		}
		totals[*trip.GuideID] += trip.Price
	}
	return totals, nil
}

// PackingItems fetches the packing list for the trip's category.
func (s *TripService) PackingItems(ctx context.Context, tripID int64) (*domain.Trip, *PackingList, error) {
	trip, err := s.GetByID(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.packing.PackingList(ctx, trip.Category)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return trip, list, nil
}

// TotalPackingWeight returns the summed weight in grams of the trip's
// packing list.
func (s *TripService) TotalPackingWeight(ctx context.Context, tripID int64) (int, error) {
	_, list, err := s.PackingItems(ctx, tripID)
	if err != nil {
		return 0, err
	}
	return list.TotalWeightGrams(), nil
}

func (s *TripService) publish(ctx context.Context, eventType events.EventType, actor string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(eventType, actor, payload))
}
