package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/observability"
	"github.com/spec-kit/trip-service/internal/persistence"
)

// HealthHandler responds to liveness, readiness, and metrics probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Metrics reports the in-memory request counters, including how many
// requests the auth pipeline rejected.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs, authDenials := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests":     requests,
		"errors":       errs,
		"auth_denials": authDenials,
	})
}

// Ready reports service readiness by checking dependencies. Redis is
// advisory only: the packing cache degrades gracefully without it.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.postgres.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		ready = false
	} else {
		depStatus["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = "degraded: " + err.Error()
	} else {
		depStatus["redis"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":       fiber.StatusServiceUnavailable,
		"message":      "one or more dependencies unavailable",
		"dependencies": depStatus,
	})
}
