package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type dashboardApplicationService interface {
	AlumniOverview(ctx context.Context, identity string) (*models.AlumniOverview, error)
	StudentOverview(ctx context.Context, identity string) (*models.StudentOverview, error)
}

type DashboardHandler struct {
	service dashboardApplicationService
}

func NewDashboardHandler(service dashboardApplicationService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) AlumniOverview(c *fiber.Ctx) error {
	stats, err := h.service.AlumniOverview(c.Context(), c.Params("identity"))
	if err != nil {
		return mapDashboardError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"stats": stats})
}

func (h *DashboardHandler) StudentOverview(c *fiber.Ctx) error {
	stats, err := h.service.StudentOverview(c.Context(), c.Params("identity"))
	if err != nil {
		return mapDashboardError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"stats": stats})
}

func mapDashboardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid request")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to load overview")
	}
}
