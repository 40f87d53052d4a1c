package controllers

import (
	"net/http"
	"strconv"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/app/services"
	"github.com/Anuragprasad270204/hostel-management/internal/middleware"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// RoomController handles room operations
type RoomController struct {
	roomService      services.RoomService
	occupancyService services.OccupancyService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService, occupancyService services.OccupancyService) *RoomController {
	return &RoomController{
		roomService:      roomService,
		occupancyService: occupancyService,
	}
}

// CreateRoom handles room creation
// @Summary Create a new room
// @Description Creates an empty room in a hostel. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Hostel not found"
// @Failure 409 {object} dto.APIResponse "Room already exists in hostel"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	room, err := c.roomService.CreateRoom(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, room)
}

// GetRooms lists rooms
// @Summary Get rooms
// @Description Retrieves all rooms, optionally filtered by hostel and availability
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param hostelId query int false "Filter by hostel ID"
// @Param isAvailable query bool false "Filter by availability"
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid filter value"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms [get]
func (c *RoomController) GetRooms(ctx *gin.Context) {
	var filter repositories.RoomFilter
	if raw := ctx.Query("hostelId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			respondBindingError(ctx, apperrors.ErrValidationFailed)
			return
		}
		filter.HostelID = &id
	}
	if raw := ctx.Query("isAvailable"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondBindingError(ctx, apperrors.ErrValidationFailed)
			return
		}
		filter.IsAvailable = &available
	}

	rooms, err := c.roomService.GetRooms(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by ID
// @Summary Get room details
// @Description Retrieves a single room by its ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid room ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoomByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	room, err := c.roomService.GetRoomByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, room)
}

// UpdateRoom updates room attributes
// @Summary Update a room
// @Description Updates room attributes. Changing the hostel moves the room with its occupants; renaming refreshes the occupants' room labels. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID" Format(int64) minimum(1)
// @Param request body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room updated"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Room or hostel not found"
// @Failure 409 {object} dto.APIResponse "Conflicting room state"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	room, err := c.roomService.UpdateRoom(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, room)
}

// DeleteRoom deletes a room
// @Summary Delete a room
// @Description Deletes a room. Refused while the room has occupants. Admin only.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Room deleted"
// @Failure 400 {object} dto.APIResponse "Invalid room ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Failure 409 {object} dto.APIResponse "Room still occupied"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.roomService.DeleteRoom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.MessageResponse{Message: "Room deleted successfully"})
}

// BookRoom books a room for the calling student
// @Summary Book a room
// @Description Places the authenticated student into the given room. A held placement is released first; booking the currently held room fails without changing anything.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BookRoomRequest true "Room to book"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Room booked"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Failure 409 {object} dto.APIResponse "Room full, not operational, or already booked"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /rooms/book [post]
func (c *RoomController) BookRoom(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	email, _ := middleware.GetEmail(ctx)

	var req dto.BookRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	student, err := c.occupancyService.BookRoom(ctx, userID, email, req.RoomID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}
