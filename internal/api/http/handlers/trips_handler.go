package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/api/dto"
	"github.com/spec-kit/trip-service/internal/auth"
	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/service"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// TripsHandler exposes trip CRUD and packing lookups.
type TripsHandler struct {
	trips *service.TripService
}

// NewTripsHandler constructs the handler.
func NewTripsHandler(tripService *service.TripService) *TripsHandler {
	return &TripsHandler{trips: tripService}
}

// Create handles POST /trips.
func (h *TripsHandler) Create(c *fiber.Ctx) error {
	trip, err := parseTripRequest(c)
	if err != nil {
		return err
	}

	if err := h.trips.Create(c.Context(), trip, actor(c)); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTrip(trip))
}

// List handles GET /trips, with optional ?category= filtering.
func (h *TripsHandler) List(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		trips, err := h.trips.FilterByCategory(c.Context(), category)
		if err != nil {
			return err
		}
		return c.JSON(dto.FromTrips(trips))
	}

	trips, err := h.trips.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTrips(trips))
}

// GetByID handles GET /trips/:id.
func (h *TripsHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	trip, err := h.trips.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTrip(trip))
}

// Update handles PUT /trips/:id.
func (h *TripsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	trip, err := parseTripRequest(c)
	if err != nil {
		return err
	}
	trip.ID = id

	updated, err := h.trips.Update(c.Context(), trip)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTrip(updated))
}

// Delete handles DELETE /trips/:id.
func (h *TripsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.trips.Delete(c.Context(), id, actor(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// LinkGuide handles PUT /trips/:tripId/guides/:guideId.
func (h *TripsHandler) LinkGuide(c *fiber.Ctx) error {
	tripID, err := pathID(c, "tripId")
	if err != nil {
		return err
	}
	guideID, err := pathID(c, "guideId")
	if err != nil {
		return err
	}

	trip, err := h.trips.LinkGuide(c.Context(), tripID, guideID, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTrip(trip))
}

// TotalPriceByGuide handles GET /trips/guides/totalprice.
func (h *TripsHandler) TotalPriceByGuide(c *fiber.Ctx) error {
	totals, err := h.trips.TotalPriceByGuide(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(totals)
}

// Packing handles GET /trips/:id/packing.
func (h *TripsHandler) Packing(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	trip, list, err := h.trips.PackingItems(c.Context(), id)
	if err != nil {
		return err
	}

	resp := dto.FromTrip(trip)
	resp.PackingItems = list.Items
	return c.JSON(resp)
}

// PackingWeight handles GET /trips/:id/packing/weight.
func (h *TripsHandler) PackingWeight(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	weight, err := h.trips.TotalPackingWeight(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"totalWeightInGrams": weight})
}

func parseTripRequest(c *fiber.Ctx) (*domain.Trip, error) {
	var req dto.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name required")
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationError("invalid category: " + req.Category)
	}

	return &domain.Trip{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		Price:     req.Price,
		Category:  category,
		GuideID:   req.GuideID,
	}, nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}

func actor(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.Subject
	}
	return ""
}
