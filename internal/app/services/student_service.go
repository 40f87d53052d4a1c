package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
)

// StudentService defines the interface for student record operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	CompleteProfile(ctx context.Context, userID int64, email string, req *dto.CompleteProfileRequest) (*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	occupancy   OccupancyService
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	occupancy OccupancyService,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		occupancy:   occupancy,
	}
}

// CreateStudent registers a new student record against an existing student
// account. Hostel and room placement run through the occupancy service so
// the counters move with the record.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if strings.TrimSpace(req.RollNumber) == "" {
		return nil, fmt.Errorf("%w: roll number cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.HostelID == nil {
		return nil, fmt.Errorf("%w: a hostel assignment is required", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: user %d is not a student account", apperrors.ErrValidationFailed, req.UserID)
	}

	paymentStatus := models.PaymentPending
	if req.PaymentStatus != "" {
		paymentStatus = models.PaymentStatus(req.PaymentStatus)
	}

	student := &models.Student{
		UserID:           &user.ID,
		RollNumber:       strings.TrimSpace(req.RollNumber),
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		HostelID:         req.HostelID,
		PaymentStatus:    paymentStatus,
		ContactNumber:    req.ContactNumber,
		EmergencyContact: req.EmergencyContact.ToEmergencyContact(),
	}

	if err := s.occupancy.RegisterStudent(ctx, student, req.RoomNumber); err != nil {
		return nil, err
	}

	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID retrieves the student record linked to a user account
func (s *studentServiceImpl) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetStudents retrieves students matching the filter
func (s *studentServiceImpl) GetStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	return s.studentRepo.List(ctx, filter)
}

// UpdateStudent updates a student record. Profile fields are written
// directly; a hostel change is a reassignment and clearing is_checked_in
// is a check-out, both through the occupancy service so the counters move.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HostelID != nil && (student.HostelID == nil || *student.HostelID != *req.HostelID) {
		if student, err = s.occupancy.ReassignStudentHostel(ctx, id, req.HostelID); err != nil {
			return nil, err
		}
	}

	if req.IsCheckedIn != nil && *req.IsCheckedIn != student.IsCheckedIn {
		if *req.IsCheckedIn {
			return nil, fmt.Errorf("%w: checking a student in requires a room assignment", apperrors.ErrValidationFailed)
		}
		if student, err = s.occupancy.CheckOut(ctx, id); err != nil {
			return nil, err
		}
	}

	if req.RollNumber != nil {
		if strings.TrimSpace(*req.RollNumber) == "" {
			return nil, fmt.Errorf("%w: roll number cannot be empty", apperrors.ErrValidationFailed)
		}
		student.RollNumber = strings.TrimSpace(*req.RollNumber)
	}
	if req.FullName != nil {
		student.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.ContactNumber != nil {
		student.ContactNumber = *req.ContactNumber
	}
	if req.PaymentStatus != nil {
		student.PaymentStatus = models.PaymentStatus(*req.PaymentStatus)
	}
	if req.EmergencyContact != nil {
		student.EmergencyContact = req.EmergencyContact.ToEmergencyContact()
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, id)
}

// DeleteStudent removes a student record and releases their placement
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	return s.occupancy.RemoveStudent(ctx, id)
}

// CompleteProfile creates the student record for the calling user in the
// hostel they chose. The record takes the token email, counts into the
// chosen hostel through the occupancy service, and an account that already
// has a record is refused rather than silently overwritten.
func (s *studentServiceImpl) CompleteProfile(ctx context.Context, userID int64, email string, req *dto.CompleteProfileRequest) (*models.Student, error) {
	if _, err := s.studentRepo.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.NewConflictError(apperrors.ErrStudentAlreadyExists,
			"A student profile already exists for this user")
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	student := &models.Student{
		UserID:           &userID,
		RollNumber:       strings.TrimSpace(req.RollNumber),
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.ToLower(strings.TrimSpace(email)),
		HostelID:         &req.HostelID,
		PaymentStatus:    models.PaymentPending,
		ContactNumber:    req.ContactNumber,
		EmergencyContact: req.EmergencyContact.ToEmergencyContact(),
	}

	if err := s.occupancy.RegisterStudent(ctx, student, nil); err != nil {
		return nil, err
	}

	return student, nil
}
