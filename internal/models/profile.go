package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
)

type Profile struct {
	ID              uuid.UUID       `json:"id"`
	ExternalID      string          `json:"external_id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Role            string          `json:"role"`
	College         *string         `json:"college"`
	Department      *string         `json:"department"`
	Semester        *string         `json:"semester"`
	Company         *string         `json:"company"`
	Industry        *string         `json:"industry"`
	GraduationYear  *int            `json:"graduation_year"`
	ExperienceYears *int            `json:"experience_years"`
	Skills          []string        `json:"skills"`
	Website         *string         `json:"website"`
	LinkedinURL     *string         `json:"linkedin_url"`
	ProfileImage    *string         `json:"profile_image"`
	Balance         decimal.Decimal `json:"balance"`
	IsAvailable     bool            `json:"is_available"`
	DarkMode        bool            `json:"dark_mode"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ProfileSearchResult is the trimmed row returned by profile search;
// identities are external so callers never see internal keys.
type ProfileSearchResult struct {
	ExternalID   string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profile_image"`
}

// AlumniCard is the directory row for the alumni browse screen. Rates are
// not part of the card; pricing lives on the alumni's services.
type AlumniCard struct {
	ExternalID     string   `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Company        *string  `json:"company"`
	Industry       *string  `json:"industry"`
	Skills         []string `json:"skills"`
	College        *string  `json:"college"`
	GraduationYear *int     `json:"graduation_year"`
	ProfileImage   *string  `json:"profile_image"`
}
