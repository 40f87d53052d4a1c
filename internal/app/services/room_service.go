package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
)

// RoomService defines the interface for room operations
type RoomService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	GetRooms(ctx context.Context, filter repositories.RoomFilter) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, req *dto.UpdateRoomRequest) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// roomServiceImpl implements the RoomService interface
type roomServiceImpl struct {
	txRunner    TxRunner
	roomRepo    repositories.IRoomRepository
	hostelRepo  repositories.IHostelRepository
	studentRepo repositories.IStudentRepository
	occupancy   OccupancyService
}

// NewRoomService creates a new room service instance
func NewRoomService(
	txRunner TxRunner,
	roomRepo repositories.IRoomRepository,
	hostelRepo repositories.IHostelRepository,
	studentRepo repositories.IStudentRepository,
	occupancy OccupancyService,
) RoomService {
	return &roomServiceImpl{
		txRunner:    txRunner,
		roomRepo:    roomRepo,
		hostelRepo:  hostelRepo,
		studentRepo: studentRepo,
		occupancy:   occupancy,
	}
}

// roomTypeForCapacity picks a room type when the request leaves it out
func roomTypeForCapacity(capacity int) models.RoomType {
	switch capacity {
	case 1:
		return models.RoomTypeSingle
	case 2:
		return models.RoomTypeDouble
	case 3:
		return models.RoomTypeTriple
	case 4:
		return models.RoomTypeQuad
	default:
		return models.RoomTypeOther
	}
}

// CreateRoom creates a new empty room in a hostel
func (s *roomServiceImpl) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	if strings.TrimSpace(req.RoomNumber) == "" {
		return nil, fmt.Errorf("%w: room number cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero", apperrors.ErrValidationFailed)
	}

	if _, err := s.hostelRepo.GetByID(ctx, req.HostelID); err != nil {
		return nil, err
	}

	roomType := models.RoomType(req.Type)
	if req.Type == "" {
		roomType = roomTypeForCapacity(req.Capacity)
	}

	room := &models.Room{
		RoomNumber:  strings.TrimSpace(req.RoomNumber),
		HostelID:    req.HostelID,
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		IsAvailable: true,
		Type:        roomType,
		Features:    req.Features,
		Status:      models.RoomStatusOperational,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// GetRoomByID retrieves a room by ID
func (s *roomServiceImpl) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

// GetRooms retrieves rooms matching the filter
func (s *roomServiceImpl) GetRooms(ctx context.Context, filter repositories.RoomFilter) ([]*models.Room, error) {
	return s.roomRepo.GetAll(ctx, filter)
}

// UpdateRoom updates room attributes. A hostel change is a full room
// reassignment and goes through the occupancy service; renaming the room
// refreshes the cached label on every occupant in the same transaction.
func (s *roomServiceImpl) UpdateRoom(ctx context.Context, id int64, req *dto.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HostelID != nil && *req.HostelID != room.HostelID {
		if room, err = s.occupancy.ReassignRoomHostel(ctx, id, *req.HostelID); err != nil {
			return nil, err
		}
	}

	renamed := false
	if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
		if strings.TrimSpace(*req.RoomNumber) == "" {
			return nil, fmt.Errorf("%w: room number cannot be empty", apperrors.ErrValidationFailed)
		}
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
		renamed = true
	}
	if req.Floor != nil {
		if *req.Floor < 0 {
			return nil, fmt.Errorf("%w: floor cannot be negative", apperrors.ErrValidationFailed)
		}
		room.Floor = *req.Floor
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be greater than zero", apperrors.ErrValidationFailed)
		}
		if *req.Capacity < room.CurrentOccupancy {
			return nil, apperrors.NewConflictError(apperrors.ErrRoomInUse,
				fmt.Sprintf("room has %d occupants, capacity cannot drop below that", room.CurrentOccupancy))
		}
		room.Capacity = *req.Capacity
	}
	if req.Type != nil {
		room.Type = models.RoomType(*req.Type)
	}
	if req.Features != nil {
		room.Features = *req.Features
	}
	if req.Status != nil {
		room.Status = models.RoomStatus(*req.Status)
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.roomRepo.WithTx(tx).Update(ctx, room); err != nil {
			return err
		}
		if renamed {
			return s.studentRepo.WithTx(tx).UpdateRoomLabelByRoom(ctx, room.ID, room.RoomNumber)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.roomRepo.GetByID(ctx, id)
}

// DeleteRoom removes a room if it has no occupants
func (s *roomServiceImpl) DeleteRoom(ctx context.Context, id int64) error {
	return s.occupancy.RemoveRoom(ctx, id)
}
