package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	ID             uuid.UUID       `json:"id"`
	AlumniID       uuid.UUID       `json:"alumni_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Rate           decimal.Decimal `json:"rate"`
	DurationMonths int             `json:"duration_months"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
