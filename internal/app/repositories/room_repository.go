package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
)

// IRoomRepository defines the interface for room database operations
type IRoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error)
	GetByNumberAndHostel(ctx context.Context, roomNumber string, hostelID int64) (*models.Room, error)
	GetAll(ctx context.Context, filter RoomFilter) ([]*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
	AdjustOccupancy(ctx context.Context, id int64, delta int) error
	CountByHostel(ctx context.Context, hostelID int64) (int, error)
	WithTx(tx pgx.Tx) IRoomRepository
}

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db Querier
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db Querier) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *RoomRepository) WithTx(tx pgx.Tx) IRoomRepository {
	return &RoomRepository{db: tx}
}

const roomColumns = `id, room_number, hostel_id, floor, capacity, current_occupancy, is_available, type, features, status, created_at`

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.HostelID,
		&room.Floor,
		&room.Capacity,
		&room.CurrentOccupancy,
		&room.IsAvailable,
		&room.Type,
		&room.Features,
		&room.Status,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (room_number, hostel_id, floor, capacity, current_occupancy, is_available, type, features, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		room.RoomNumber,
		room.HostelID,
		room.Floor,
		room.Capacity,
		room.CurrentOccupancy,
		room.IsAvailable,
		room.Type,
		room.Features,
		room.Status,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_hostel_id_room_number_key") {
			return apperrors.ErrRoomAlreadyExists
		}
		return fmt.Errorf("error creating room: %w", err)
	}

	return nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a room by ID and locks the row until the
// surrounding transaction ends, serializing concurrent bookings on the
// same room. Callers outside a transaction must not use it.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Room, error) {
	return r.getByID(ctx, id, true)
}

func (r *RoomRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return room, nil
}

// GetByNumberAndHostel retrieves a room by its label within a hostel
func (r *RoomRepository) GetByNumberAndHostel(ctx context.Context, roomNumber string, hostelID int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = $1 AND hostel_id = $2`

	room, err := scanRoom(r.db.QueryRow(ctx, query, roomNumber, hostelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return room, nil
}

// RoomFilter narrows room listings. Nil fields match everything.
type RoomFilter struct {
	HostelID    *int64
	IsAvailable *bool
}

// GetAll retrieves all rooms matching the filter
func (r *RoomRepository) GetAll(ctx context.Context, filter RoomFilter) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	var conditions []string
	var args []any
	if filter.HostelID != nil {
		args = append(args, *filter.HostelID)
		conditions = append(conditions, fmt.Sprintf("hostel_id = $%d", len(args)))
	}
	if filter.IsAvailable != nil {
		args = append(args, *filter.IsAvailable)
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY hostel_id, room_number`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// Update updates a room. Availability is recomputed from the stored
// counter and the new capacity in the same statement.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $2,
		    hostel_id = $3,
		    floor = $4,
		    capacity = $5,
		    type = $6,
		    features = $7,
		    status = $8,
		    is_available = current_occupancy < $5
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.HostelID,
		room.Floor,
		room.Capacity,
		room.Type,
		room.Features,
		room.Status,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_hostel_id_room_number_key") {
			return apperrors.ErrRoomAlreadyExists
		}
		return fmt.Errorf("error updating room: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// Delete removes a room by ID
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// AdjustOccupancy shifts the room occupancy counter by delta, clamped to
// the [0, capacity] range, and recomputes availability in the same
// statement so the two fields cannot disagree.
func (r *RoomRepository) AdjustOccupancy(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE rooms
		SET current_occupancy = LEAST(GREATEST(current_occupancy + $2, 0), capacity),
		    is_available = LEAST(GREATEST(current_occupancy + $2, 0), capacity) < capacity
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("error adjusting room occupancy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// CountByHostel counts the rooms that belong to a hostel
func (r *RoomRepository) CountByHostel(ctx context.Context, hostelID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE hostel_id = $1`, hostelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting rooms: %w", err)
	}

	return count, nil
}
