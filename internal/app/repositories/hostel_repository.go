package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
)

// IHostelRepository defines the interface for hostel database operations
type IHostelRepository interface {
	Create(ctx context.Context, hostel *models.Hostel) error
	GetByID(ctx context.Context, id int64) (*models.Hostel, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Hostel, error)
	GetFirst(ctx context.Context) (*models.Hostel, error)
	GetAll(ctx context.Context) ([]*models.Hostel, error)
	Update(ctx context.Context, hostel *models.Hostel) error
	Delete(ctx context.Context, id int64) error
	AdjustOccupancy(ctx context.Context, id int64, delta int) error
	WithTx(tx pgx.Tx) IHostelRepository
}

// HostelRepository handles database operations for hostels
type HostelRepository struct {
	db Querier
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db Querier) *HostelRepository {
	return &HostelRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *HostelRepository) WithTx(tx pgx.Tx) IHostelRepository {
	return &HostelRepository{db: tx}
}

// Create creates a new hostel
func (r *HostelRepository) Create(ctx context.Context, hostel *models.Hostel) error {
	query := `
		INSERT INTO hostels (name, address, capacity, current_occupancy, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		hostel.Name,
		hostel.Address,
		hostel.Capacity,
		hostel.CurrentOccupancy,
		hostel.Description,
	).Scan(&hostel.ID, &hostel.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "hostels_name_key") {
			return apperrors.ErrHostelAlreadyExists
		}
		return fmt.Errorf("error creating hostel: %w", err)
	}

	return nil
}

// GetByID retrieves a hostel by ID
func (r *HostelRepository) GetByID(ctx context.Context, id int64) (*models.Hostel, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a hostel by ID and locks the row until the
// surrounding transaction ends. Callers outside a transaction must not use it.
func (r *HostelRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Hostel, error) {
	return r.getByID(ctx, id, true)
}

func (r *HostelRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*models.Hostel, error) {
	query := `
		SELECT id, name, address, capacity, current_occupancy, description, created_at
		FROM hostels
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var hostel models.Hostel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hostel.ID,
		&hostel.Name,
		&hostel.Address,
		&hostel.Capacity,
		&hostel.CurrentOccupancy,
		&hostel.Description,
		&hostel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHostelNotFound
		}
		return nil, fmt.Errorf("error retrieving hostel: %w", err)
	}

	return &hostel, nil
}

// GetFirst retrieves the oldest hostel on record. Used as the default
// placement when a booking arrives without a hostel assignment.
func (r *HostelRepository) GetFirst(ctx context.Context) (*models.Hostel, error) {
	query := `
		SELECT id, name, address, capacity, current_occupancy, description, created_at
		FROM hostels
		ORDER BY id
		LIMIT 1
	`

	var hostel models.Hostel
	err := r.db.QueryRow(ctx, query).Scan(
		&hostel.ID,
		&hostel.Name,
		&hostel.Address,
		&hostel.Capacity,
		&hostel.CurrentOccupancy,
		&hostel.Description,
		&hostel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoHostelsAvailable
		}
		return nil, fmt.Errorf("error retrieving hostel: %w", err)
	}

	return &hostel, nil
}

// GetAll retrieves all hostels
func (r *HostelRepository) GetAll(ctx context.Context) ([]*models.Hostel, error) {
	query := `
		SELECT id, name, address, capacity, current_occupancy, description, created_at
		FROM hostels
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hostels []*models.Hostel
	for rows.Next() {
		var hostel models.Hostel
		if err := rows.Scan(
			&hostel.ID,
			&hostel.Name,
			&hostel.Address,
			&hostel.Capacity,
			&hostel.CurrentOccupancy,
			&hostel.Description,
			&hostel.CreatedAt,
		); err != nil {
			return nil, err
		}
		hostels = append(hostels, &hostel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hostels, nil
}

// Update updates a hostel. Occupancy is clamped so that lowering the
// capacity never leaves the counter above it.
func (r *HostelRepository) Update(ctx context.Context, hostel *models.Hostel) error {
	query := `
		UPDATE hostels
		SET name = $2,
		    address = $3,
		    capacity = $4,
		    current_occupancy = LEAST(current_occupancy, $4),
		    description = $5
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		hostel.ID,
		hostel.Name,
		hostel.Address,
		hostel.Capacity,
		hostel.Description,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "hostels_name_key") {
			return apperrors.ErrHostelAlreadyExists
		}
		return fmt.Errorf("error updating hostel: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	return nil
}

// Delete removes a hostel by ID
func (r *HostelRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM hostels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting hostel: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	return nil
}

// AdjustOccupancy shifts the hostel occupancy counter by delta, clamped
// to the [0, capacity] range so drift can never push it out of bounds.
func (r *HostelRepository) AdjustOccupancy(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE hostels
		SET current_occupancy = LEAST(GREATEST(current_occupancy + $2, 0), capacity)
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("error adjusting hostel occupancy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	return nil
}
