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

// StudentController handles student record operations
type StudentController struct {
	studentService   services.StudentService
	occupancyService services.OccupancyService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, occupancyService services.OccupancyService) *StudentController {
	return &StudentController{
		studentService:   studentService,
		occupancyService: occupancyService,
	}
}

// CreateStudent handles student registration by an administrator
// @Summary Create a student record
// @Description Creates a student record linked to an existing student account. The hostel link counts the student into the hostel; a room label additionally places them into that room. Admin only.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Hostel or room not found"
// @Failure 409 {object} dto.APIResponse "Roll number or email already exists, or room full"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, student)
}

// GetStudents lists students
// @Summary Get students
// @Description Retrieves student records, optionally filtered by hostel or check-in state. Admin only.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param hostelId query int false "Filter by hostel ID"
// @Param checkedIn query bool false "Filter by check-in state"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid filter"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	var filter repositories.StudentFilter

	if raw := ctx.Query("hostelId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			respondBindingError(ctx, apperrors.ErrValidationFailed)
			return
		}
		filter.HostelID = &id
	}
	if raw := ctx.Query("checkedIn"); raw != "" {
		checkedIn, err := strconv.ParseBool(raw)
		if err != nil {
			respondBindingError(ctx, apperrors.ErrValidationFailed)
			return
		}
		filter.IsCheckedIn = &checkedIn
	}

	students, err := c.studentService.GetStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, students)
}

// GetStudentByID retrieves a student by ID
// @Summary Get student details
// @Description Retrieves a single student record by its ID. Admin only.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid student ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// UpdateStudent updates a student record
// @Summary Update a student
// @Description Updates a student record. A hostel change is a reassignment and moves both hostel counters; clearing isCheckedIn checks the student out. Admin only.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student or hostel not found"
// @Failure 409 {object} dto.APIResponse "Roll number already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// DeleteStudent deletes a student record
// @Summary Delete a student
// @Description Deletes a student record and releases whatever it was counted into. Admin only.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Student deleted"
// @Failure 400 {object} dto.APIResponse "Invalid student ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// AdmitStudent places a student into a room by label
// @Summary Admit a student into a room
// @Description Places an existing student into a room identified by hostel and room label. Admin only.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.AdmitStudentRequest true "Target placement"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student admitted"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student, hostel or room not found"
// @Failure 409 {object} dto.APIResponse "Room full, not operational, or already held"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id}/room [put]
func (c *StudentController) AdmitStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AdmitStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	student, err := c.occupancyService.AdmitStudent(ctx, id, req.HostelID, req.RoomNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}

// CheckOutStudent checks a student out of their room
// @Summary Check a student out
// @Description Releases the student's placement and records the check-out date. Admin only.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student checked out"
// @Failure 400 {object} dto.APIResponse "Student is not checked in"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id}/checkout [post]
func (c *StudentController) CheckOutStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.occupancyService.CheckOut(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, student)
}
