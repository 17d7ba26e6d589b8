package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

const profileSearchLimit = 20

type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Upsert creates the profile on first submission and refreshes the mutable
// fields on every later one; the external identity and creation timestamp
// never change.
func (s *ProfileService) Upsert(ctx context.Context, input repository.UpsertProfileInput) (*models.Profile, error) {
	input.ExternalID = strings.TrimSpace(input.ExternalID)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if input.ExternalID == "" || input.FirstName == "" || input.LastName == "" {
		return nil, ErrInvalidInput
	}
	if input.Role != models.RoleStudent && input.Role != models.RoleAlumni {
		return nil, ErrInvalidInput
	}

	return s.profileRepo.Upsert(ctx, input)
}

func (s *ProfileService) GetByExternalID(ctx context.Context, externalID string) (*models.Profile, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrInvalidInput
	}

	profile, err := s.profileRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Search(ctx context.Context, term string) ([]models.ProfileSearchResult, error) {
	return s.profileRepo.Search(ctx, term, profileSearchLimit)
}

func (s *ProfileService) ListAvailableAlumni(ctx context.Context, search string) ([]models.AlumniCard, error) {
	return s.profileRepo.ListAvailableAlumni(ctx, search)
}

func (s *ProfileService) SetAvailability(ctx context.Context, externalID string, available bool) error {
	updated, err := s.profileRepo.SetAvailability(ctx, strings.TrimSpace(externalID), available)
	if err != nil {
		return err
	}
	if !updated {
		return ErrProfileNotFound
	}
	return nil
}

func (s *ProfileService) SetDarkMode(ctx context.Context, externalID string, darkMode bool) error {
	updated, err := s.profileRepo.SetDarkMode(ctx, strings.TrimSpace(externalID), darkMode)
	if err != nil {
		return err
	}
	if !updated {
		return ErrProfileNotFound
	}
	return nil
}

// Delete removes the member and, through the schema cascades, every booking,
// service, message, question and answer tied to them.
func (s *ProfileService) Delete(ctx context.Context, externalID string) error {
	deleted, err := s.profileRepo.Delete(ctx, strings.TrimSpace(externalID))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProfileNotFound
	}
	return nil
}
