package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/api/dto"
	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/service"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// GuidesHandler exposes guide CRUD.
type GuidesHandler struct {
	guides *service.GuideService
}

// NewGuidesHandler constructs the handler.
func NewGuidesHandler(guideService *service.GuideService) *GuidesHandler {
	return &GuidesHandler{guides: guideService}
}

// Create handles POST /guides.
func (h *GuidesHandler) Create(c *fiber.Ctx) error {
	guide, err := parseGuideRequest(c)
	if err != nil {
		return err
	}
	if err := h.guides.Create(c.Context(), guide); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromGuide(guide))
}

// List handles GET /guides.
func (h *GuidesHandler) List(c *fiber.Ctx) error {
	guides, err := h.guides.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromGuides(guides))
}

// GetByID handles GET /guides/:id.
func (h *GuidesHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	guide, err := h.guides.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromGuide(guide))
}

// Update handles PUT /guides/:id.
func (h *GuidesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	guide, err := parseGuideRequest(c)
	if err != nil {
		return err
	}
	guide.ID = id

	updated, err := h.guides.Update(c.Context(), guide)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromGuide(updated))
}

// Delete handles DELETE /guides/:id.
func (h *GuidesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.guides.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseGuideRequest(c *fiber.Ctx) (*domain.Guide, error) {
	var req dto.GuideRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name required")
	}

	return &domain.Guide{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		YearsOfExperience: req.YearsOfExperience,
	}, nil
}
