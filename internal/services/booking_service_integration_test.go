package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestCreateBookingMovesRateAndRecordsValidity(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "100.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID) })

	offering := createTestService(t, ctx, pool, alumni.ID, "40.00", 3)

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		StudentIdentity: student.ExternalID,
		AlumniIdentity:  alumni.ExternalID,
		ServiceID:       offering.ID,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	wantValidity := models.ValidityDate(booking.BookingDate, 3)
	if !sameDate(booking.ValidityDate, wantValidity) {
		t.Fatalf("expected validity %v, got %v", wantValidity, booking.ValidityDate)
	}

	studentBalance := fetchBalance(t, ctx, pool, student.ExternalID)
	if !studentBalance.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected student balance 60.00, got %s", studentBalance)
	}
	alumniBalance := fetchBalance(t, ctx, pool, alumni.ExternalID)
	if !alumniBalance.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected alumni balance 40.00, got %s", alumniBalance)
	}

	if got := countBookings(t, ctx, pool, student.ID); got != 1 {
		t.Fatalf("expected 1 booking row, got %d", got)
	}
}

func TestCreateBookingRejectsInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "30.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID) })

	offering := createTestService(t, ctx, pool, alumni.ID, "40.00", 1)

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		StudentIdentity: student.ExternalID,
		AlumniIdentity:  alumni.ExternalID,
		ServiceID:       offering.ID,
	})
	if err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if got := fetchBalance(t, ctx, pool, student.ExternalID); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected student balance unchanged at 30.00, got %s", got)
	}
	if got := fetchBalance(t, ctx, pool, alumni.ExternalID); !got.IsZero() {
		t.Fatalf("expected alumni balance unchanged at 0, got %s", got)
	}
	if got := countBookings(t, ctx, pool, student.ID); got != 0 {
		t.Fatalf("expected no booking rows, got %d", got)
	}
}

func TestCreateBookingRejectsForeignService(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "100.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	otherAlumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() {
		cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID, otherAlumni.ExternalID)
	})

	foreign := createTestService(t, ctx, pool, otherAlumni.ID, "40.00", 1)

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		StudentIdentity: student.ExternalID,
		AlumniIdentity:  alumni.ExternalID,
		ServiceID:       foreign.ID,
	})
	if err != ErrServiceOwnership {
		t.Fatalf("expected ErrServiceOwnership, got %v", err)
	}

	if got := fetchBalance(t, ctx, pool, student.ExternalID); !got.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected student balance unchanged at 100.00, got %s", got)
	}
}

func TestBookingListsClassifyOngoingAndShowCounterparty(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "200.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID) })

	offering := createTestService(t, ctx, pool, alumni.ID, "50.00", 6)
	if _, err := service.CreateBooking(ctx, CreateBookingInput{
		StudentIdentity: student.ExternalID,
		AlumniIdentity:  alumni.ExternalID,
		ServiceID:       offering.ID,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	studentView, err := service.ListForStudent(ctx, student.ExternalID)
	if err != nil {
		t.Fatalf("ListForStudent: %v", err)
	}
	if len(studentView) != 1 {
		t.Fatalf("expected 1 booking for student, got %d", len(studentView))
	}
	if studentView[0].Status != models.BookingOngoing {
		t.Fatalf("expected ongoing booking, got %q", studentView[0].Status)
	}
	if studentView[0].CounterpartyID != alumni.ExternalID {
		t.Fatalf("expected counterparty %q, got %q", alumni.ExternalID, studentView[0].CounterpartyID)
	}

	alumniView, err := service.ListForAlumni(ctx, alumni.ExternalID)
	if err != nil {
		t.Fatalf("ListForAlumni: %v", err)
	}
	if len(alumniView) != 1 || alumniView[0].CounterpartyID != student.ExternalID {
		t.Fatalf("expected student as counterparty, got %+v", alumniView)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationBookingService(pool *pgxpool.Pool) *BookingService {
	return NewBookingService(
		pool,
		repository.NewBookingRepository(pool),
		repository.NewProfileRepository(pool),
		repository.NewServiceRepository(pool),
	)
}

func createTestProfile(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role, balance string) *models.Profile {
	t.Helper()

	profileRepo := repository.NewProfileRepository(pool)
	profile, err := profileRepo.Upsert(ctx, repository.UpsertProfileInput{
		ExternalID: fmt.Sprintf("it-%s-%d", role, time.Now().UnixNano()),
		FirstName:  "Test",
		LastName:   role,
		Role:       role,
		Skills:     []string{"testing"},
	})
	if err != nil {
		t.Fatalf("Upsert(%s): %v", role, err)
	}

	if _, err := pool.Exec(ctx, "UPDATE profiles SET balance = $2 WHERE id = $1", profile.ID, balance); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	profile.Balance = decimal.RequireFromString(balance)
	return profile
}

func createTestService(t *testing.T, ctx context.Context, pool *pgxpool.Pool, alumniID uuid.UUID, rate string, durationMonths int) *models.Service {
	t.Helper()

	serviceRepo := repository.NewServiceRepository(pool)
	offering, err := serviceRepo.Create(ctx, repository.CreateServiceInput{
		AlumniID:       alumniID,
		Title:          "Mock interview package",
		Description:    "Weekly mock interviews",
		Rate:           decimal.RequireFromString(rate),
		DurationMonths: durationMonths,
	})
	if err != nil {
		t.Fatalf("Create service: %v", err)
	}
	return offering
}

func cleanupTestProfiles(t *testing.T, ctx context.Context, pool *pgxpool.Pool, externalIDs ...string) {
	t.Helper()

	if len(externalIDs) == 0 {
		return
	}
	// FK cascades take the services, bookings, messages and Q&A rows.
	if _, err := pool.Exec(ctx, "DELETE FROM profiles WHERE external_id = ANY($1)", externalIDs); err != nil {
		t.Fatalf("cleanup profiles: %v", err)
	}
}

func fetchBalance(t *testing.T, ctx context.Context, pool *pgxpool.Pool, externalID string) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := pool.QueryRow(ctx, "SELECT balance FROM profiles WHERE external_id = $1", externalID).Scan(&balance); err != nil {
		t.Fatalf("fetch balance: %v", err)
	}
	return balance
}

func countBookings(t *testing.T, ctx context.Context, pool *pgxpool.Pool, studentID uuid.UUID) int {
	t.Helper()

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM bookings WHERE student_id = $1", studentID).Scan(&count); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return count
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
