package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/db"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// TxRunner runs a function within a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// OccupancyService owns every operation that moves the occupancy counters.
// Room and hostel counters, room availability and student placement fields
// are only ever written here, inside a single transaction per operation,
// so they cannot drift apart under concurrent requests.
type OccupancyService interface {
	RegisterStudent(ctx context.Context, student *models.Student, roomNumber *string) error
	BookRoom(ctx context.Context, userID int64, email string, roomID int64) (*models.Student, error)
	CheckOut(ctx context.Context, studentID int64) (*models.Student, error)
	AdmitStudent(ctx context.Context, studentID, hostelID int64, roomNumber string) (*models.Student, error)
	ReassignStudentHostel(ctx context.Context, studentID int64, hostelID *int64) (*models.Student, error)
	ReassignRoomHostel(ctx context.Context, roomID, hostelID int64) (*models.Room, error)
	RemoveStudent(ctx context.Context, studentID int64) error
	RemoveRoom(ctx context.Context, roomID int64) error
	RemoveHostel(ctx context.Context, hostelID int64) error
}

// occupancyServiceImpl implements the OccupancyService interface
type occupancyServiceImpl struct {
	txRunner    TxRunner
	studentRepo repositories.IStudentRepository
	roomRepo    repositories.IRoomRepository
	hostelRepo  repositories.IHostelRepository
}

// NewOccupancyService creates a new occupancy service instance
func NewOccupancyService(
	txRunner TxRunner,
	studentRepo repositories.IStudentRepository,
	roomRepo repositories.IRoomRepository,
	hostelRepo repositories.IHostelRepository,
) OccupancyService {
	return &occupancyServiceImpl{
		txRunner:    txRunner,
		studentRepo: studentRepo,
		roomRepo:    roomRepo,
		hostelRepo:  hostelRepo,
	}
}

// RegisterStudent creates a student record and applies the matching
// occupancy changes. A hostel link counts the student into the hostel;
// a room label additionally places them into that room, capacity permitting.
func (s *occupancyServiceImpl) RegisterStudent(ctx context.Context, student *models.Student, roomNumber *string) error {
	if roomNumber != nil && student.HostelID == nil {
		return fmt.Errorf("%w: a room assignment requires a hostel", apperrors.ErrValidationFailed)
	}

	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		if student.HostelID != nil {
			if _, err := hostels.GetByIDForUpdate(ctx, *student.HostelID); err != nil {
				return err
			}
		}

		if err := students.Create(ctx, student); err != nil {
			return err
		}

		if roomNumber != nil {
			room, err := rooms.GetByNumberAndHostel(ctx, *roomNumber, *student.HostelID)
			if err != nil {
				return err
			}
			room, err = rooms.GetByIDForUpdate(ctx, room.ID)
			if err != nil {
				return err
			}
			return s.releaseAndPlace(ctx, tx, student, room)
		}

		if student.HostelID != nil {
			if err := hostels.AdjustOccupancy(ctx, *student.HostelID, 1); err != nil {
				return err
			}
		}

		return nil
	})
}

// BookRoom places the calling user's student into the given room. A user
// without a student record gets a provisional one so that a freshly
// registered account can book immediately. Booking the room the student
// already occupies fails without touching any counter; booking a new room
// releases the old placement first.
func (s *occupancyServiceImpl) BookRoom(ctx context.Context, userID int64, email string, roomID int64) (*models.Student, error) {
	var booked *models.Student

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)

		student, err := students.GetByUserID(ctx, userID)
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			student, err = s.provisionStudent(ctx, tx, userID, email)
		}
		if err != nil {
			return err
		}

		room, err := rooms.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}

		if err := s.releaseAndPlace(ctx, tx, student, room); err != nil {
			return err
		}

		booked = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", booked.ID).
		Int64("roomID", roomID).
		Msg("Room booked")

	return booked, nil
}

// CheckOut releases a student's placement and records the check-out date.
// The hostel link goes with the room: a checked-out student is counted in
// no hostel, so a later reassignment or deletion cannot decrement again.
// The room decrement is best effort: a placement pointing at a room that
// no longer exists must not block the student from leaving.
func (s *occupancyServiceImpl) CheckOut(ctx context.Context, studentID int64) (*models.Student, error) {
	var checkedOut *models.Student

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		student, err := students.GetByIDForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		if !student.IsCheckedIn && student.RoomID == nil {
			return apperrors.ErrNotCheckedIn
		}

		if student.RoomID != nil {
			if err := rooms.AdjustOccupancy(ctx, *student.RoomID, -1); err != nil &&
				!errors.Is(err, apperrors.ErrRoomNotFound) {
				return err
			}
		}

		if student.HostelID != nil {
			if err := hostels.AdjustOccupancy(ctx, *student.HostelID, -1); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := students.ClearAssignment(ctx, student.ID, now); err != nil {
			return err
		}

		student.HostelID = nil
		student.RoomID = nil
		student.RoomNumber = nil
		student.IsCheckedIn = false
		student.CheckOutDate = &now
		checkedOut = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", studentID).Msg("Student checked out")

	return checkedOut, nil
}

// AdmitStudent places an existing student into a room identified by its
// label within a hostel. Used by administrators assigning rooms directly.
func (s *occupancyServiceImpl) AdmitStudent(ctx context.Context, studentID, hostelID int64, roomNumber string) (*models.Student, error) {
	var admitted *models.Student

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)

		student, err := students.GetByIDForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		room, err := rooms.GetByNumberAndHostel(ctx, roomNumber, hostelID)
		if err != nil {
			return err
		}
		room, err = rooms.GetByIDForUpdate(ctx, room.ID)
		if err != nil {
			return err
		}

		if err := s.releaseAndPlace(ctx, tx, student, room); err != nil {
			return err
		}

		admitted = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	return admitted, nil
}

// ReassignStudentHostel moves a student to another hostel, or out of all
// hostels when hostelID is nil. A held room belongs to the old hostel, so
// the placement is released as part of the move.
func (s *occupancyServiceImpl) ReassignStudentHostel(ctx context.Context, studentID int64, hostelID *int64) (*models.Student, error) {
	var moved *models.Student

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		student, err := students.GetByIDForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		if equalID(student.HostelID, hostelID) {
			moved = student
			return nil
		}

		if hostelID != nil {
			if _, err := hostels.GetByIDForUpdate(ctx, *hostelID); err != nil {
				return err
			}
		}

		if student.RoomID != nil {
			if err := rooms.AdjustOccupancy(ctx, *student.RoomID, -1); err != nil &&
				!errors.Is(err, apperrors.ErrRoomNotFound) {
				return err
			}
			if err := students.ClearAssignment(ctx, student.ID, time.Now()); err != nil {
				return err
			}
			student.RoomID = nil
			student.RoomNumber = nil
			student.IsCheckedIn = false
		}

		if student.HostelID != nil {
			if err := hostels.AdjustOccupancy(ctx, *student.HostelID, -1); err != nil {
				return err
			}
		}
		if hostelID != nil {
			if err := hostels.AdjustOccupancy(ctx, *hostelID, 1); err != nil {
				return err
			}
		}

		if err := students.SetHostel(ctx, student.ID, hostelID); err != nil {
			return err
		}

		student.HostelID = hostelID
		moved = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// ReassignRoomHostel moves a room, occupants included, to another hostel.
// The occupant headcount moves between the two hostel counters and every
// occupant's hostel link follows the room.
func (s *occupancyServiceImpl) ReassignRoomHostel(ctx context.Context, roomID, hostelID int64) (*models.Room, error) {
	var moved *models.Room

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		room, err := rooms.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}

		if room.HostelID == hostelID {
			moved = room
			return nil
		}

		if _, err := hostels.GetByIDForUpdate(ctx, hostelID); err != nil {
			return err
		}

		if room.CurrentOccupancy > 0 {
			if err := hostels.AdjustOccupancy(ctx, room.HostelID, -room.CurrentOccupancy); err != nil {
				return err
			}
			if err := hostels.AdjustOccupancy(ctx, hostelID, room.CurrentOccupancy); err != nil {
				return err
			}
		}

		oldHostelID := room.HostelID
		room.HostelID = hostelID
		if err := rooms.Update(ctx, room); err != nil {
			return err
		}

		if err := students.UpdateHostelByRoom(ctx, room.ID, hostelID); err != nil {
			return err
		}

		logger.Info().
			Int64("roomID", room.ID).
			Int64("fromHostelID", oldHostelID).
			Int64("toHostelID", hostelID).
			Int("occupants", room.CurrentOccupancy).
			Msg("Room reassigned between hostels")

		moved = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// RemoveStudent deletes a student record and gives back whatever the
// record was counted into: the room decrements only for a held placement,
// the hostel decrements for any hostel link.
func (s *occupancyServiceImpl) RemoveStudent(ctx context.Context, studentID int64) error {
	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		student, err := students.GetByIDForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		if student.RoomID != nil {
			if err := rooms.AdjustOccupancy(ctx, *student.RoomID, -1); err != nil &&
				!errors.Is(err, apperrors.ErrRoomNotFound) {
				return err
			}
		}

		if student.HostelID != nil {
			if err := hostels.AdjustOccupancy(ctx, *student.HostelID, -1); err != nil {
				return err
			}
		}

		return students.Delete(ctx, student.ID)
	})
}

// RemoveRoom deletes a room. An occupied room is refused outright and no
// counter moves until the deletion is certain to happen.
func (s *occupancyServiceImpl) RemoveRoom(ctx context.Context, roomID int64) error {
	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)

		room, err := rooms.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}

		occupants, err := students.CountByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if occupants > 0 || room.CurrentOccupancy > 0 {
			return apperrors.NewConflictError(apperrors.ErrRoomInUse,
				fmt.Sprintf("room %s still has occupants", room.RoomNumber))
		}

		return rooms.Delete(ctx, room.ID)
	})
}

// RemoveHostel deletes a hostel. Hostels with students or rooms attached
// are refused; the caller has to move or delete those first.
func (s *occupancyServiceImpl) RemoveHostel(ctx context.Context, hostelID int64) error {
	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		rooms := s.roomRepo.WithTx(tx)
		hostels := s.hostelRepo.WithTx(tx)

		hostel, err := hostels.GetByIDForUpdate(ctx, hostelID)
		if err != nil {
			return err
		}

		studentCount, err := students.CountByHostel(ctx, hostel.ID)
		if err != nil {
			return err
		}
		if studentCount > 0 {
			return apperrors.NewConflictError(apperrors.ErrHostelInUse,
				fmt.Sprintf("hostel %s still has %d students assigned", hostel.Name, studentCount))
		}

		roomCount, err := rooms.CountByHostel(ctx, hostel.ID)
		if err != nil {
			return err
		}
		if roomCount > 0 {
			return apperrors.NewConflictError(apperrors.ErrHostelInUse,
				fmt.Sprintf("hostel %s still has %d rooms", hostel.Name, roomCount))
		}

		return hostels.Delete(ctx, hostel.ID)
	})
}

// provisionStudent creates a minimal student record for a user account
// that books before an administrator registered them. The record defaults
// into the oldest hostel on the books and the roll number is a placeholder
// an administrator is expected to replace.
func (s *occupancyServiceImpl) provisionStudent(ctx context.Context, tx pgx.Tx, userID int64, email string) (*models.Student, error) {
	students := s.studentRepo.WithTx(tx)
	hostels := s.hostelRepo.WithTx(tx)

	hostel, err := hostels.GetFirst(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := hostels.GetByIDForUpdate(ctx, hostel.ID); err != nil {
		return nil, err
	}

	fullName := email
	if at := strings.Index(email, "@"); at > 0 {
		fullName = email[:at]
	}

	student := &models.Student{
		UserID:        &userID,
		RollNumber:    fmt.Sprintf("TEMP-%d", time.Now().UnixMilli()),
		FullName:      fullName,
		Email:         email,
		HostelID:      &hostel.ID,
		PaymentStatus: models.PaymentPending,
	}

	if err := students.Create(ctx, student); err != nil {
		return nil, err
	}

	if err := hostels.AdjustOccupancy(ctx, hostel.ID, 1); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userID", userID).
		Int64("studentID", student.ID).
		Msg("Provisioned student record for booking")

	return student, nil
}

// releaseAndPlace moves a student into the target room: it validates the
// target, gives back the old placement and takes the new one. The caller
// must already hold the row lock on the target room.
func (s *occupancyServiceImpl) releaseAndPlace(ctx context.Context, tx pgx.Tx, student *models.Student, room *models.Room) error {
	students := s.studentRepo.WithTx(tx)
	rooms := s.roomRepo.WithTx(tx)
	hostels := s.hostelRepo.WithTx(tx)

	if student.RoomID != nil && *student.RoomID == room.ID {
		return apperrors.ErrAlreadyBooked
	}

	if room.Status != models.RoomStatusOperational {
		return apperrors.NewConflictError(apperrors.ErrRoomNotOperational,
			fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status))
	}

	if room.IsFull() {
		return apperrors.ErrRoomFull
	}

	if student.RoomID != nil {
		if err := rooms.AdjustOccupancy(ctx, *student.RoomID, -1); err != nil &&
			!errors.Is(err, apperrors.ErrRoomNotFound) {
			return err
		}
	}
	if student.HostelID != nil {
		if err := hostels.AdjustOccupancy(ctx, *student.HostelID, -1); err != nil {
			return err
		}
	}

	if err := rooms.AdjustOccupancy(ctx, room.ID, 1); err != nil {
		return err
	}
	if err := hostels.AdjustOccupancy(ctx, room.HostelID, 1); err != nil {
		return err
	}

	now := time.Now()
	if err := students.Assign(ctx, student.ID, room.HostelID, room.ID, room.RoomNumber, now); err != nil {
		return err
	}

	student.HostelID = &room.HostelID
	student.RoomID = &room.ID
	student.RoomNumber = &room.RoomNumber
	student.IsCheckedIn = true
	student.CheckInDate = &now
	student.CheckOutDate = nil

	return nil
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
