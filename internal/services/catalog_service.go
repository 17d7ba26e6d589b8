package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

// CatalogService manages the alumni-authored service offerings.
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	profileRepo *repository.ProfileRepository
}

func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	profileRepo *repository.ProfileRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		profileRepo: profileRepo,
	}
}

type CreateServiceInput struct {
	Title          string
	Description    string
	Rate           decimal.Decimal
	DurationMonths int
}

func (s *CatalogService) ListByAlumni(ctx context.Context, alumniIdentity string) ([]models.Service, error) {
	alumni, err := s.resolveAlumni(ctx, alumniIdentity)
	if err != nil {
		return nil, err
	}
	return s.serviceRepo.ListByAlumni(ctx, alumni.ID)
}

func (s *CatalogService) Create(ctx context.Context, alumniIdentity string, input CreateServiceInput) (*models.Service, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || !input.Rate.IsPositive() || input.DurationMonths <= 0 {
		return nil, ErrInvalidInput
	}

	alumni, err := s.resolveAlumni(ctx, alumniIdentity)
	if err != nil {
		return nil, err
	}
	if alumni.Role != models.RoleAlumni {
		return nil, ErrInvalidInput
	}

	return s.serviceRepo.Create(ctx, repository.CreateServiceInput{
		AlumniID:       alumni.ID,
		Title:          input.Title,
		Description:    strings.TrimSpace(input.Description),
		Rate:           input.Rate,
		DurationMonths: input.DurationMonths,
	})
}

func (s *CatalogService) Update(ctx context.Context, serviceID uuid.UUID, input repository.UpdateServiceInput) (*models.Service, error) {
	if input.Title == nil && input.Description == nil && input.Rate == nil && input.DurationMonths == nil {
		return nil, ErrInvalidInput
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrInvalidInput
	}
	if input.Rate != nil && !input.Rate.IsPositive() {
		return nil, ErrInvalidInput
	}
	if input.DurationMonths != nil && *input.DurationMonths <= 0 {
		return nil, ErrInvalidInput
	}

	service, err := s.serviceRepo.Update(ctx, serviceID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) Delete(ctx context.Context, serviceID uuid.UUID) error {
	deleted, err := s.serviceRepo.Delete(ctx, serviceID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	return nil
}

func (s *CatalogService) resolveAlumni(ctx context.Context, identity string) (*models.Profile, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrInvalidInput
	}
	profile, err := s.profileRepo.GetByExternalID(ctx, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
