package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type bookingApplicationService interface {
	CreateBooking(ctx context.Context, input services.CreateBookingInput) (*models.Booking, error)
	ListForAlumni(ctx context.Context, alumniIdentity string) ([]models.BookingDetail, error)
	ListForStudent(ctx context.Context, studentIdentity string) ([]models.BookingDetail, error)
}

type BookingHandler struct {
	service bookingApplicationService
}

func NewBookingHandler(service bookingApplicationService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	StudentIdentity string `json:"student_identity"`
	AlumniIdentity  string `json:"alumni_identity"`
	ServiceID       string `json:"service_id"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.StudentIdentity == "" || req.AlumniIdentity == "" || req.ServiceID == "" {
		return respondError(c, fiber.StatusBadRequest, "Missing fields")
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid service id")
	}

	booking, err := h.service.CreateBooking(c.Context(), services.CreateBookingInput{
		StudentIdentity: req.StudentIdentity,
		AlumniIdentity:  req.AlumniIdentity,
		ServiceID:       serviceID,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return respond(c, fiber.StatusCreated, fiber.Map{"booking": booking})
}

func (h *BookingHandler) ListForAlumni(c *fiber.Ctx) error {
	bookings, err := h.service.ListForAlumni(c.Context(), c.Params("identity"))
	if err != nil {
		return mapBookingError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"bookings": bookings})
}

func (h *BookingHandler) ListForStudent(c *fiber.Ctx) error {
	bookings, err := h.service.ListForStudent(c.Context(), c.Params("identity"))
	if err != nil {
		return mapBookingError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"bookings": bookings})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientBalance):
		return respondError(c, fiber.StatusBadRequest, "Insufficient balance")
	case errors.Is(err, services.ErrServiceOwnership):
		return respondError(c, fiber.StatusBadRequest, "Service does not belong to this alumni")
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid request")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	case errors.Is(err, services.ErrServiceNotFound):
		return respondError(c, fiber.StatusNotFound, "Service not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to process booking")
	}
}
