package controllers

import (
	"net/http"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/services"
	"github.com/Anuragprasad270204/hostel-management/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HostelController handles hostel operations
type HostelController struct {
	hostelService services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService services.HostelService) *HostelController {
	return &HostelController{
		hostelService: hostelService,
	}
}

// CreateHostel handles hostel creation
// @Summary Create a new hostel
// @Description Creates a hostel with an empty occupancy counter. Admin only.
// @Tags hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHostelRequest true "Hostel information"
// @Success 201 {object} dto.APIResponse{data=models.Hostel} "Hostel created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 409 {object} dto.APIResponse "Hostel already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /hostels [post]
func (c *HostelController) CreateHostel(ctx *gin.Context) {
	var req dto.CreateHostelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	hostel, err := c.hostelService.CreateHostel(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, hostel)
}

// GetAllHostels lists all hostels
// @Summary Get all hostels
// @Description Retrieves all hostels with their occupancy counters
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Hostel} "Hostels retrieved"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /hostels [get]
func (c *HostelController) GetAllHostels(ctx *gin.Context) {
	hostels, err := c.hostelService.GetAllHostels(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostels)
}

// GetHostelByID retrieves a hostel by ID
// @Summary Get hostel details
// @Description Retrieves a single hostel by its ID
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Hostel} "Hostel retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid hostel ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Hostel not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /hostels/{id} [get]
func (c *HostelController) GetHostelByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	hostel, err := c.hostelService.GetHostelByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostel)
}

// UpdateHostel updates hostel attributes
// @Summary Update a hostel
// @Description Updates hostel attributes. Lowering the capacity clamps the occupancy counter. Admin only.
// @Tags hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Param request body dto.UpdateHostelRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Hostel} "Hostel updated"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Hostel not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /hostels/{id} [put]
func (c *HostelController) UpdateHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateHostelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	hostel, err := c.hostelService.UpdateHostel(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, hostel)
}

// DeleteHostel deletes a hostel
// @Summary Delete a hostel
// @Description Deletes a hostel. Refused while students or rooms still reference it. Admin only.
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Hostel deleted"
// @Failure 400 {object} dto.APIResponse "Invalid hostel ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Hostel not found"
// @Failure 409 {object} dto.APIResponse "Hostel still in use"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /hostels/{id} [delete]
func (c *HostelController) DeleteHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.hostelService.DeleteHostel(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.MessageResponse{Message: "Hostel deleted successfully"})
}
