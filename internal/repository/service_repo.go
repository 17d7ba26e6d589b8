package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

type CreateServiceInput struct {
	AlumniID       uuid.UUID
	Title          string
	Description    string
	Rate           decimal.Decimal
	DurationMonths int
}

// UpdateServiceInput carries a partial edit; nil fields are left untouched.
type UpdateServiceInput struct {
	Title          *string
	Description    *string
	Rate           *decimal.Decimal
	DurationMonths *int
}

type ServiceRepository struct {
	db DBTX
}

func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, input CreateServiceInput) (*models.Service, error) {
	query := `
		INSERT INTO services (alumni_id, title, description, rate, duration_months)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, alumni_id, title, description, rate, duration_months, created_at, updated_at
	`
	return scanService(r.db.QueryRow(ctx, query,
		input.AlumniID,
		input.Title,
		input.Description,
		input.Rate,
		input.DurationMonths,
	))
}

func (r *ServiceRepository) GetByID(ctx context.Context, serviceID uuid.UUID) (*models.Service, error) {
	query := `
		SELECT id, alumni_id, title, description, rate, duration_months, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	return scanService(r.db.QueryRow(ctx, query, serviceID))
}

func (r *ServiceRepository) ListByAlumni(ctx context.Context, alumniID uuid.UUID) ([]models.Service, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, alumni_id, title, description, rate, duration_months, created_at, updated_at
		FROM services
		WHERE alumni_id = $1
		ORDER BY created_at DESC
	`, alumniID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(
			&service.ID,
			&service.AlumniID,
			&service.Title,
			&service.Description,
			&service.Rate,
			&service.DurationMonths,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, serviceID uuid.UUID, input UpdateServiceInput) (*models.Service, error) {
	sets := []string{}
	args := []any{}

	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Rate != nil {
		args = append(args, *input.Rate)
		sets = append(sets, fmt.Sprintf("rate = $%d", len(args)))
	}
	if input.DurationMonths != nil {
		args = append(args, *input.DurationMonths)
		sets = append(sets, fmt.Sprintf("duration_months = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, serviceID)
	}

	args = append(args, serviceID)
	query := fmt.Sprintf(`
		UPDATE services
		SET %s, updated_at = now()
		WHERE id = $%d
		RETURNING id, alumni_id, title, description, rate, duration_months, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	return scanService(r.db.QueryRow(ctx, query, args...))
}

func (r *ServiceRepository) Delete(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM services
		WHERE id = $1
	`, serviceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanService(row interface{ Scan(dest ...any) error }) (*models.Service, error) {
	var service models.Service
	err := row.Scan(
		&service.ID,
		&service.AlumniID,
		&service.Title,
		&service.Description,
		&service.Rate,
		&service.DurationMonths,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}
