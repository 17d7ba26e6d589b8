package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

// BookingService settles a student's purchase of an alumni service: it moves
// the service rate from the student's balance to the alumni's and records the
// booking, all inside one transaction.
type BookingService struct {
	db          *pgxpool.Pool
	bookingRepo *repository.BookingRepository
	profileRepo *repository.ProfileRepository
	serviceRepo *repository.ServiceRepository
}

func NewBookingService(
	db *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	profileRepo *repository.ProfileRepository,
	serviceRepo *repository.ServiceRepository,
) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		profileRepo: profileRepo,
		serviceRepo: serviceRepo,
	}
}

type CreateBookingInput struct {
	StudentIdentity string
	AlumniIdentity  string
	ServiceID       uuid.UUID
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	studentIdentity := strings.TrimSpace(input.StudentIdentity)
	alumniIdentity := strings.TrimSpace(input.AlumniIdentity)
	if studentIdentity == "" || alumniIdentity == "" || input.ServiceID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if studentIdentity == alumniIdentity {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txProfileRepo := repository.NewProfileRepository(tx)
	txServiceRepo := repository.NewServiceRepository(tx)
	txBookingRepo := repository.NewBookingRepository(tx)

	// Lock both profile rows in ascending identity order so two bookings
	// touching the same pair never deadlock.
	first, second := studentIdentity, alumniIdentity
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*models.Profile, 2)
	for _, identity := range []string{first, second} {
		profile, err := txProfileRepo.GetByExternalIDForUpdate(ctx, identity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		locked[identity] = profile
	}

	student := locked[studentIdentity]
	alumni := locked[alumniIdentity]
	if student.Role != models.RoleStudent || alumni.Role != models.RoleAlumni {
		return nil, ErrInvalidInput
	}

	service, err := txServiceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if service.AlumniID != alumni.ID {
		return nil, ErrServiceOwnership
	}

	if student.Balance.LessThan(service.Rate) {
		return nil, ErrInsufficientBalance
	}

	if err := txProfileRepo.AddToBalance(ctx, student.ID, service.Rate.Neg()); err != nil {
		return nil, err
	}
	if err := txProfileRepo.AddToBalance(ctx, alumni.ID, service.Rate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		StudentID:    student.ID,
		AlumniID:     alumni.ID,
		ServiceID:    service.ID,
		BookingDate:  now,
		BookingTime:  now.Format("15:04:05"),
		ValidityDate: models.ValidityDate(now, service.DurationMonths),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListForAlumni returns the alumni's booked sessions, newest first, with the
// ongoing/past classification applied at read time.
func (s *BookingService) ListForAlumni(ctx context.Context, alumniIdentity string) ([]models.BookingDetail, error) {
	profile, err := s.resolveProfile(ctx, alumniIdentity)
	if err != nil {
		return nil, err
	}

	details, err := s.bookingRepo.ListForAlumni(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return classify(details), nil
}

func (s *BookingService) ListForStudent(ctx context.Context, studentIdentity string) ([]models.BookingDetail, error) {
	profile, err := s.resolveProfile(ctx, studentIdentity)
	if err != nil {
		return nil, err
	}

	details, err := s.bookingRepo.ListForStudent(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return classify(details), nil
}

func (s *BookingService) resolveProfile(ctx context.Context, identity string) (*models.Profile, error) {
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

func classify(details []models.BookingDetail) []models.BookingDetail {
	now := time.Now().UTC()
	for i := range details {
		details[i].Status = models.BookingStatus(details[i].ValidityDate, now)
	}
	return details
}
