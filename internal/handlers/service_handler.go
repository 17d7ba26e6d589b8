package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type catalogApplicationService interface {
	ListByAlumni(ctx context.Context, alumniIdentity string) ([]models.Service, error)
	Create(ctx context.Context, alumniIdentity string, input services.CreateServiceInput) (*models.Service, error)
	Update(ctx context.Context, serviceID uuid.UUID, input repository.UpdateServiceInput) (*models.Service, error)
	Delete(ctx context.Context, serviceID uuid.UUID) error
}

type ServiceHandler struct {
	service catalogApplicationService
}

func NewServiceHandler(service catalogApplicationService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

type createServiceRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Rate           decimal.Decimal `json:"rate"`
	DurationMonths int             `json:"duration_months"`
}

type updateServiceRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	Rate           *decimal.Decimal `json:"rate"`
	DurationMonths *int             `json:"duration_months"`
}

func (h *ServiceHandler) ListByAlumni(c *fiber.Ctx) error {
	listed, err := h.service.ListByAlumni(c.Context(), c.Params("identity"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"services": listed})
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var req createServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.service.Create(c.Context(), c.Params("identity"), services.CreateServiceInput{
		Title:          req.Title,
		Description:    req.Description,
		Rate:           req.Rate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"service": created})
}

func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid service id")
	}

	var req updateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := h.service.Update(c.Context(), serviceID, repository.UpdateServiceInput{
		Title:          req.Title,
		Description:    req.Description,
		Rate:           req.Rate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"service": updated})
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid service id")
	}

	if err := h.service.Delete(c.Context(), serviceID); err != nil {
		return mapServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{})
}

func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Missing or invalid fields")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	case errors.Is(err, services.ErrServiceNotFound):
		return respondError(c, fiber.StatusNotFound, "Service not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to process service request")
	}
}
