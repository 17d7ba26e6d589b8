package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type profileApplicationService interface {
	Upsert(ctx context.Context, input repository.UpsertProfileInput) (*models.Profile, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Profile, error)
	Search(ctx context.Context, term string) ([]models.ProfileSearchResult, error)
	ListAvailableAlumni(ctx context.Context, search string) ([]models.AlumniCard, error)
	SetAvailability(ctx context.Context, externalID string, available bool) error
	SetDarkMode(ctx context.Context, externalID string, darkMode bool) error
	Delete(ctx context.Context, externalID string) error
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type upsertProfileRequest struct {
	ExternalID      string   `json:"external_id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Role            string   `json:"role"`
	College         *string  `json:"college"`
	Department      *string  `json:"department"`
	Semester        *string  `json:"semester"`
	Company         *string  `json:"company"`
	Industry        *string  `json:"industry"`
	GraduationYear  *int     `json:"graduation_year"`
	ExperienceYears *int     `json:"experience_years"`
	Skills          []string `json:"skills"`
	Website         *string  `json:"website"`
	LinkedinURL     *string  `json:"linkedin_url"`
	ProfileImage    *string  `json:"profile_image"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type darkModeRequest struct {
	DarkMode *bool `json:"dark_mode"`
}

func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := h.service.Upsert(c.Context(), repository.UpsertProfileInput{
		ExternalID:      req.ExternalID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Role:            req.Role,
		College:         req.College,
		Department:      req.Department,
		Semester:        req.Semester,
		Company:         req.Company,
		Industry:        req.Industry,
		GraduationYear:  req.GraduationYear,
		ExperienceYears: req.ExperienceYears,
		Skills:          req.Skills,
		Website:         req.Website,
		LinkedinURL:     req.LinkedinURL,
		ProfileImage:    req.ProfileImage,
	})
	if err != nil {
		return mapProfileError(c, err)
	}

	return respond(c, fiber.StatusOK, fiber.Map{"profile": profile})
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.service.GetByExternalID(c.Context(), c.Params("identity"))
	if err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"profile": profile})
}

func (h *ProfileHandler) Search(c *fiber.Ctx) error {
	results, err := h.service.Search(c.Context(), c.Query("q"))
	if err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"results": results})
}

func (h *ProfileHandler) ListAlumni(c *fiber.Ctx) error {
	alumni, err := h.service.ListAvailableAlumni(c.Context(), c.Query("search"))
	if err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"alumni": alumni})
}

func (h *ProfileHandler) SetAvailability(c *fiber.Ctx) error {
	var req availabilityRequest
	if err := c.BodyParser(&req); err != nil || req.IsAvailable == nil {
		return respondError(c, fiber.StatusBadRequest, "is_available is required")
	}

	if err := h.service.SetAvailability(c.Context(), c.Params("identity"), *req.IsAvailable); err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"is_available": *req.IsAvailable})
}

func (h *ProfileHandler) SetDarkMode(c *fiber.Ctx) error {
	var req darkModeRequest
	if err := c.BodyParser(&req); err != nil || req.DarkMode == nil {
		return respondError(c, fiber.StatusBadRequest, "dark_mode is required")
	}

	if err := h.service.SetDarkMode(c.Context(), c.Params("identity"), *req.DarkMode); err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"dark_mode": *req.DarkMode})
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("identity")); err != nil {
		return mapProfileError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Missing or invalid fields")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to process profile request")
	}
}
