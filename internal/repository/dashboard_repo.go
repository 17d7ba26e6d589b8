package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

// DashboardRepository serves the read-only overview rollups. It only ever
// consumes state written by the other repositories.
type DashboardRepository struct {
	db DBTX
}

func NewDashboardRepository(db DBTX) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) AlumniOverview(ctx context.Context, alumniID uuid.UUID) (*models.AlumniOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE alumni_id = $1),
			(SELECT COUNT(DISTINCT student_id) FROM bookings WHERE alumni_id = $1),
			(SELECT COUNT(*) FROM services WHERE alumni_id = $1),
			(SELECT COALESCE(SUM(s.rate), 0)
			   FROM bookings b
			   JOIN services s ON s.id = b.service_id
			  WHERE b.alumni_id = $1),
			(SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE)
	`

	var overview models.AlumniOverview
	err := r.db.QueryRow(ctx, query, alumniID).Scan(
		&overview.TotalSessions,
		&overview.TotalStudents,
		&overview.TotalServices,
		&overview.Earnings,
		&overview.UnreadMessages,
	)
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *DashboardRepository) StudentOverview(ctx context.Context, studentID uuid.UUID) (*models.StudentOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE student_id = $1),
			(SELECT COUNT(*) FROM bookings WHERE student_id = $1 AND validity_date >= CURRENT_DATE),
			(SELECT COUNT(DISTINCT alumni_id) FROM bookings WHERE student_id = $1),
			(SELECT COUNT(*) FROM questions WHERE asked_by = $1),
			(SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE)
	`

	var overview models.StudentOverview
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&overview.TotalBookings,
		&overview.OngoingBookings,
		&overview.Mentors,
		&overview.QuestionsAsked,
		&overview.UnreadMessages,
	)
	if err != nil {
		return nil, err
	}
	return &overview, nil
}
