package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

// DashboardService assembles the read-only overview screens. It never
// mutates core state.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	profileRepo   *repository.ProfileRepository
}

func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	profileRepo *repository.ProfileRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		profileRepo:   profileRepo,
	}
}

func (s *DashboardService) AlumniOverview(ctx context.Context, identity string) (*models.AlumniOverview, error) {
	profile, err := s.resolveProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	overview, err := s.dashboardRepo.AlumniOverview(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	overview.Balance = profile.Balance
	return overview, nil
}

func (s *DashboardService) StudentOverview(ctx context.Context, identity string) (*models.StudentOverview, error) {
	profile, err := s.resolveProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	overview, err := s.dashboardRepo.StudentOverview(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	overview.Balance = profile.Balance
	return overview, nil
}

func (s *DashboardService) resolveProfile(ctx context.Context, identity string) (*models.Profile, error) {
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
