package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/api/dto"
	"github.com/spec-kit/trip-service/internal/service"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// AuthHandler exposes login, registration and the dev populate endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required")
	}

	token, user, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Token: token, Username: user.Username})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required")
	}

	token, user, err := h.auth.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{Token: token, Username: user.Username})
}

// Populate handles POST /auth/populate. Development convenience only.
func (h *AuthHandler) Populate(c *fiber.Ctx) error {
	if err := h.auth.Populate(c.Context()); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "database populated with default users and roles",
	})
}

// Healthcheck handles GET /auth/healthcheck.
func (h *AuthHandler) Healthcheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"msg": "API is up and running"})
}
