package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/dberrors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// StudentFilter narrows List results. Nil fields match everything.
type StudentFilter struct {
	HostelID    *int64
	RoomID      *int64
	IsCheckedIn *bool
}

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, id int64, hostelID int64, roomID int64, roomNumber string, checkInDate time.Time) error
	ClearAssignment(ctx context.Context, id int64, checkOutDate time.Time) error
	SetHostel(ctx context.Context, id int64, hostelID *int64) error
	UpdateHostelByRoom(ctx context.Context, roomID int64, hostelID int64) error
	UpdateRoomLabelByRoom(ctx context.Context, roomID int64, roomNumber string) error
	CountByHostel(ctx context.Context, hostelID int64) (int, error)
	CountByRoom(ctx context.Context, roomID int64) (int, error)
	WithTx(tx pgx.Tx) IStudentRepository
}

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *StudentRepository) WithTx(tx pgx.Tx) IStudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

var studentColumns = []string{
	"id", "user_id", "roll_number", "full_name", "email",
	"hostel_id", "room_id", "room_number", "is_checked_in",
	"check_in_date", "check_out_date", "payment_status",
	"contact_number", "emergency_contact", "created_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.RollNumber,
		&student.FullName,
		&student.Email,
		&student.HostelID,
		&student.RoomID,
		&student.RoomNumber,
		&student.IsCheckedIn,
		&student.CheckInDate,
		&student.CheckOutDate,
		&student.PaymentStatus,
		&student.ContactNumber,
		&student.EmergencyContact,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, roll_number, full_name, email, hostel_id, room_id, room_number,
			is_checked_in, check_in_date, payment_status, contact_number, emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.RollNumber,
		student.FullName,
		student.Email,
		student.HostelID,
		student.RoomID,
		student.RoomNumber,
		student.IsCheckedIn,
		student.CheckInDate,
		student.PaymentStatus,
		student.ContactNumber,
		student.EmergencyContact,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_roll_number_key"):
			return apperrors.ErrRollNumberAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "students_email_key"),
			dberrors.IsDuplicateConstraintError(err, "students_user_id_key"):
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate retrieves a student by ID and locks the row until the
// surrounding transaction ends. Callers outside a transaction must not use it.
func (r *StudentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id}, true)
}

// GetByUserID retrieves the student record linked to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getWhere(ctx, squirrel.Eq{"user_id": userID}, false)
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getWhere(ctx, squirrel.Eq{"email": email}, false)
}

func (r *StudentRepository) getWhere(ctx context.Context, pred squirrel.Eq, forUpdate bool) (*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(pred).
		Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves students matching the filter
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id")

	if filter.HostelID != nil {
		builder = builder.Where(squirrel.Eq{"hostel_id": *filter.HostelID})
	}
	if filter.RoomID != nil {
		builder = builder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.IsCheckedIn != nil {
		builder = builder.Where(squirrel.Eq{"is_checked_in": *filter.IsCheckedIn})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates a student's profile fields. Assignment fields (hostel,
// room, check-in state) are managed only through Assign, ClearAssignment
// and SetHostel so they always move together with the occupancy counters.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET roll_number = $2,
		    full_name = $3,
		    payment_status = $4,
		    contact_number = $5,
		    emergency_contact = $6
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.ID,
		student.RollNumber,
		student.FullName,
		student.PaymentStatus,
		student.ContactNumber,
		student.EmergencyContact,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			return apperrors.ErrRollNumberAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Assign places a student into a room and marks them checked in
func (r *StudentRepository) Assign(ctx context.Context, id int64, hostelID int64, roomID int64, roomNumber string, checkInDate time.Time) error {
	query := `
		UPDATE students
		SET hostel_id = $2,
		    room_id = $3,
		    room_number = $4,
		    is_checked_in = TRUE,
		    check_in_date = $5,
		    check_out_date = NULL
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, hostelID, roomID, roomNumber, checkInDate)
	if err != nil {
		return fmt.Errorf("error assigning student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// ClearAssignment removes a student's placement entirely: room, hostel link
// and checked-in flag. A cleared student is counted in no hostel and no room.
func (r *StudentRepository) ClearAssignment(ctx context.Context, id int64, checkOutDate time.Time) error {
	query := `
		UPDATE students
		SET hostel_id = NULL,
		    room_id = NULL,
		    room_number = NULL,
		    is_checked_in = FALSE,
		    check_out_date = $2
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, checkOutDate)
	if err != nil {
		return fmt.Errorf("error clearing student assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetHostel moves a student to another hostel (or out of all hostels when nil)
// without touching their room placement fields.
func (r *StudentRepository) SetHostel(ctx context.Context, id int64, hostelID *int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE students SET hostel_id = $2 WHERE id = $1`, id, hostelID)
	if err != nil {
		return fmt.Errorf("error updating student hostel: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateHostelByRoom repoints every occupant of a room at a new hostel.
// Used when a whole room is reassigned between hostels.
func (r *StudentRepository) UpdateHostelByRoom(ctx context.Context, roomID int64, hostelID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE students SET hostel_id = $2 WHERE room_id = $1`, roomID, hostelID)
	if err != nil {
		return fmt.Errorf("error updating occupants' hostel: %w", err)
	}

	return nil
}

// UpdateRoomLabelByRoom refreshes the cached room label on every occupant.
// Used when a room is renamed.
func (r *StudentRepository) UpdateRoomLabelByRoom(ctx context.Context, roomID int64, roomNumber string) error {
	_, err := r.db.Exec(ctx, `UPDATE students SET room_number = $2 WHERE room_id = $1`, roomID, roomNumber)
	if err != nil {
		return fmt.Errorf("error updating occupants' room label: %w", err)
	}

	return nil
}

// CountByHostel counts the students linked to a hostel
func (r *StudentRepository) CountByHostel(ctx context.Context, hostelID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE hostel_id = $1`, hostelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// CountByRoom counts the students placed in a room
func (r *StudentRepository) CountByRoom(ctx context.Context, roomID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE room_id = $1`, roomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}
