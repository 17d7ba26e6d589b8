package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

type CreateBookingInput struct {
	StudentID    uuid.UUID
	AlumniID     uuid.UUID
	ServiceID    uuid.UUID
	BookingDate  time.Time
	BookingTime  string
	ValidityDate time.Time
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (student_id, alumni_id, service_id, booking_date, booking_time, validity_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, student_id, alumni_id, service_id, booking_date, booking_time::text, validity_date, created_at
	`

	var booking models.Booking
	err := r.db.QueryRow(ctx, query,
		input.StudentID,
		input.AlumniID,
		input.ServiceID,
		input.BookingDate,
		input.BookingTime,
		input.ValidityDate,
	).Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.AlumniID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.ValidityDate,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForAlumni returns bookings held against the alumni, decorated with the
// student's name and the purchased service, newest first.
func (r *BookingRepository) ListForAlumni(ctx context.Context, alumniID uuid.UUID) ([]models.BookingDetail, error) {
	query := `
		SELECT
			b.id,
			st.external_id,
			st.first_name || ' ' || st.last_name,
			s.title,
			s.description,
			s.duration_months,
			b.booking_date,
			b.booking_time::text,
			b.validity_date
		FROM bookings b
		JOIN services s  ON s.id  = b.service_id
		JOIN profiles st ON st.id = b.student_id
		WHERE b.alumni_id = $1
		ORDER BY b.booking_date DESC, b.booking_time DESC
	`
	return r.listDetails(ctx, query, alumniID)
}

// ListForStudent mirrors ListForAlumni from the student's side, decorating
// each row with the providing alumni instead.
func (r *BookingRepository) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]models.BookingDetail, error) {
	query := `
		SELECT
			b.id,
			al.external_id,
			al.first_name || ' ' || al.last_name,
			s.title,
			s.description,
			s.duration_months,
			b.booking_date,
			b.booking_time::text,
			b.validity_date
		FROM bookings b
		JOIN services s  ON s.id  = b.service_id
		JOIN profiles al ON al.id = b.alumni_id
		WHERE b.student_id = $1
		ORDER BY b.booking_date DESC, b.booking_time DESC
	`
	return r.listDetails(ctx, query, studentID)
}

func (r *BookingRepository) listDetails(ctx context.Context, query string, profileID uuid.UUID) ([]models.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.BookingDetail, 0)
	for rows.Next() {
		var detail models.BookingDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.CounterpartyID,
			&detail.CounterpartyName,
			&detail.ServiceTitle,
			&detail.ServiceDescription,
			&detail.DurationMonths,
			&detail.BookingDate,
			&detail.BookingTime,
			&detail.ValidityDate,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}
