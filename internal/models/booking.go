package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingOngoing = "ongoing"
	BookingPast    = "past"
)

type Booking struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	AlumniID     uuid.UUID `json:"alumni_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	BookingDate  time.Time `json:"booking_date"`
	BookingTime  string    `json:"booking_time"`
	ValidityDate time.Time `json:"validity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingDetail is a booking row decorated for list screens: the
// counterparty's identity and name plus the purchased service fields.
type BookingDetail struct {
	ID                 uuid.UUID `json:"id"`
	CounterpartyID     string    `json:"counterparty_id"`
	CounterpartyName   string    `json:"counterparty_name"`
	ServiceTitle       string    `json:"service_title"`
	ServiceDescription string    `json:"service_description"`
	DurationMonths     int       `json:"duration_months"`
	BookingDate        time.Time `json:"booking_date"`
	BookingTime        string    `json:"booking_time"`
	ValidityDate       time.Time `json:"validity_date"`
	Status             string    `json:"status"`
}

// ValidityDate returns the date a booking created at start stops being
// ongoing: the creation date shifted by the service duration in months.
func ValidityDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, durationMonths, 0)
}

// BookingStatus classifies a booking as ongoing or past. The comparison is
// date-granular: a booking stays ongoing through the whole validity date.
func BookingStatus(validityDate, now time.Time) string {
	v := time.Date(validityDate.Year(), validityDate.Month(), validityDate.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if v.Before(n) {
		return BookingPast
	}
	return BookingOngoing
}
