package controllers

import (
	"net/http"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/services"
	"github.com/Anuragprasad270204/hostel-management/internal/middleware"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// ProfileController handles the authenticated student's own record
type ProfileController struct {
	studentService   services.StudentService
	occupancyService services.OccupancyService
}

// NewProfileController creates a new ProfileController
func NewProfileController(studentService services.StudentService, occupancyService services.OccupancyService) *ProfileController {
	return &ProfileController{
		studentService:   studentService,
		occupancyService: occupancyService,
	}
}

// GetMyProfile returns the calling user's student record
// @Summary Get my profile
// @Description Retrieves the student record linked to the authenticated account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile retrieved"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /profile [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.studentService.GetStudentByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// CompleteProfile creates the calling user's student record
// @Summary Complete my profile
// @Description Creates the student record of the authenticated account in the chosen hostel. Fails if a record already exists.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompleteProfileRequest true "Profile information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 409 {object} dto.APIResponse "Profile or roll number already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /profile/complete [post]
func (c *ProfileController) CompleteProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	email, _ := middleware.GetEmail(ctx)

	var req dto.CompleteProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	student, err := c.studentService.CompleteProfile(ctx, userID, email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// CheckOut checks the calling student out of their room
// @Summary Check out
// @Description Releases the authenticated student's placement and records the check-out date
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Checked out"
// @Failure 400 {object} dto.APIResponse "Not checked in"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "No student record for this account"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /profile/checkout [post]
func (c *ProfileController) CheckOut(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.studentService.GetStudentByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	checkedOut, err := c.occupancyService.CheckOut(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, checkedOut)
}
