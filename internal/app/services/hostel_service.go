package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
)

// HostelService defines the interface for hostel operations
type HostelService interface {
	CreateHostel(ctx context.Context, req *dto.CreateHostelRequest) (*models.Hostel, error)
	GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error)
	GetAllHostels(ctx context.Context) ([]*models.Hostel, error)
	UpdateHostel(ctx context.Context, id int64, req *dto.UpdateHostelRequest) (*models.Hostel, error)
	DeleteHostel(ctx context.Context, id int64) error
}

// hostelServiceImpl implements the HostelService interface
type hostelServiceImpl struct {
	hostelRepo repositories.IHostelRepository
	occupancy  OccupancyService
}

// NewHostelService creates a new hostel service instance
func NewHostelService(hostelRepo repositories.IHostelRepository, occupancy OccupancyService) HostelService {
	return &hostelServiceImpl{
		hostelRepo: hostelRepo,
		occupancy:  occupancy,
	}
}

// CreateHostel creates a new hostel with an empty occupancy counter
func (s *hostelServiceImpl) CreateHostel(ctx context.Context, req *dto.CreateHostelRequest) (*models.Hostel, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero", apperrors.ErrValidationFailed)
	}

	hostel := &models.Hostel{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Capacity:    req.Capacity,
		Description: req.Description,
	}

	if err := s.hostelRepo.Create(ctx, hostel); err != nil {
		return nil, err
	}

	return hostel, nil
}

// GetHostelByID retrieves a hostel by ID
func (s *hostelServiceImpl) GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error) {
	return s.hostelRepo.GetByID(ctx, id)
}

// GetAllHostels retrieves all hostels
func (s *hostelServiceImpl) GetAllHostels(ctx context.Context) ([]*models.Hostel, error) {
	return s.hostelRepo.GetAll(ctx)
}

// UpdateHostel updates hostel attributes. The occupancy counter itself is
// never written here; lowering the capacity clamps it at the new ceiling.
func (s *hostelServiceImpl) UpdateHostel(ctx context.Context, id int64, req *dto.UpdateHostelRequest) (*models.Hostel, error) {
	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		hostel.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		hostel.Address = strings.TrimSpace(*req.Address)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be greater than zero", apperrors.ErrValidationFailed)
		}
		hostel.Capacity = *req.Capacity
	}
	if req.Description != nil {
		hostel.Description = *req.Description
	}

	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return nil, err
	}

	return s.hostelRepo.GetByID(ctx, id)
}

// DeleteHostel removes a hostel if nothing references it
func (s *hostelServiceImpl) DeleteHostel(ctx context.Context, id int64) error {
	return s.occupancy.RemoveHostel(ctx, id)
}
