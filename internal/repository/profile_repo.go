package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

const profileColumns = `id, external_id, first_name, last_name, role, college, department,
		semester, company, industry, graduation_year, experience_years, skills,
		website, linkedin_url, profile_image, balance, is_available, dark_mode,
		created_at, updated_at`

type UpsertProfileInput struct {
	ExternalID      string
	FirstName       string
	LastName        string
	Role            string
	College         *string
	Department      *string
	Semester        *string
	Company         *string
	Industry        *string
	GraduationYear  *int
	ExperienceYears *int
	Skills          []string
	Website         *string
	LinkedinURL     *string
	ProfileImage    *string
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates or refreshes the profile keyed by external identity.
// Balance, availability and dark mode are never written here: the first
// insert takes the column defaults and later submissions leave them alone.
func (r *ProfileRepository) Upsert(ctx context.Context, input UpsertProfileInput) (*models.Profile, error) {
	query := fmt.Sprintf(`
		INSERT INTO profiles (
			external_id, first_name, last_name, role, college, department,
			semester, company, industry, graduation_year, experience_years,
			skills, website, linkedin_url, profile_image
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (external_id) DO UPDATE SET
			first_name       = EXCLUDED.first_name,
			last_name        = EXCLUDED.last_name,
			role             = EXCLUDED.role,
			college          = EXCLUDED.college,
			department       = EXCLUDED.department,
			semester         = EXCLUDED.semester,
			company          = EXCLUDED.company,
			industry         = EXCLUDED.industry,
			graduation_year  = EXCLUDED.graduation_year,
			experience_years = EXCLUDED.experience_years,
			skills           = EXCLUDED.skills,
			website          = EXCLUDED.website,
			linkedin_url     = EXCLUDED.linkedin_url,
			profile_image    = EXCLUDED.profile_image,
			updated_at       = now()
		RETURNING %s
	`, profileColumns)

	row := r.db.QueryRow(ctx, query,
		input.ExternalID,
		input.FirstName,
		input.LastName,
		input.Role,
		input.College,
		input.Department,
		input.Semester,
		input.Company,
		input.Industry,
		input.GraduationYear,
		input.ExperienceYears,
		input.Skills,
		input.Website,
		input.LinkedinURL,
		input.ProfileImage,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		WHERE external_id = $1
	`, profileColumns)
	return scanProfile(r.db.QueryRow(ctx, query, externalID))
}

// GetByExternalIDForUpdate locks the profile row for the duration of the
// surrounding transaction. Callers locking more than one profile must lock
// in ascending external-identity order.
func (r *ProfileRepository) GetByExternalIDForUpdate(ctx context.Context, externalID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		WHERE external_id = $1
		FOR UPDATE
	`, profileColumns)
	return scanProfile(r.db.QueryRow(ctx, query, externalID))
}

// AddToBalance applies a signed delta to the profile's balance. The
// balance >= 0 table constraint rejects an over-debit that slipped past the
// service-level check.
func (r *ProfileRepository) AddToBalance(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1
	`, profileID, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", profileID)
	}
	return nil
}

func (r *ProfileRepository) Search(ctx context.Context, term string, limit int) ([]models.ProfileSearchResult, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	rows, err := r.db.Query(ctx, `
		SELECT
			external_id,
			first_name || ' ' || last_name AS name,
			role,
			profile_image
		FROM profiles
		WHERE first_name ILIKE $1
		   OR last_name  ILIKE $1
		   OR company    ILIKE $1
		   OR college    ILIKE $1
		ORDER BY name
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.ProfileSearchResult, 0)
	for rows.Next() {
		var result models.ProfileSearchResult
		if err := rows.Scan(&result.ExternalID, &result.Name, &result.Role, &result.ProfileImage); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// ListAvailableAlumni returns the browsable alumni directory. An empty
// search term matches everyone through the ILIKE wildcards.
func (r *ProfileRepository) ListAvailableAlumni(ctx context.Context, search string) ([]models.AlumniCard, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			external_id, first_name, last_name, company, industry, skills,
			college, graduation_year, profile_image
		FROM profiles
		WHERE role = 'alumni'
		  AND is_available = TRUE
		  AND (
			first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
			OR company   ILIKE '%' || $1 || '%'
			OR college   ILIKE '%' || $1 || '%'
			OR skills @> ARRAY[$1]
		  )
		ORDER BY last_name
	`, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]models.AlumniCard, 0)
	for rows.Next() {
		var card models.AlumniCard
		if err := rows.Scan(
			&card.ExternalID,
			&card.FirstName,
			&card.LastName,
			&card.Company,
			&card.Industry,
			&card.Skills,
			&card.College,
			&card.GraduationYear,
			&card.ProfileImage,
		); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *ProfileRepository) SetAvailability(ctx context.Context, externalID string, available bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET is_available = $2, updated_at = now()
		WHERE external_id = $1
	`, externalID, available)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProfileRepository) SetDarkMode(ctx context.Context, externalID string, darkMode bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET dark_mode = $2, updated_at = now()
		WHERE external_id = $1
	`, externalID, darkMode)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the profile; services, bookings, messages, questions and
// answers referencing it go with it through the FK cascades.
func (r *ProfileRepository) Delete(ctx context.Context, externalID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM profiles
		WHERE external_id = $1
	`, externalID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanProfile(row interface{ Scan(dest ...any) error }) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID,
		&profile.ExternalID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Role,
		&profile.College,
		&profile.Department,
		&profile.Semester,
		&profile.Company,
		&profile.Industry,
		&profile.GraduationYear,
		&profile.ExperienceYears,
		&profile.Skills,
		&profile.Website,
		&profile.LinkedinURL,
		&profile.ProfileImage,
		&profile.Balance,
		&profile.IsAvailable,
		&profile.DarkMode,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
