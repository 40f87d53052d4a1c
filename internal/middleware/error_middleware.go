package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// HandleAPIError maps service errors onto HTTP responses. A wrapped
// CustomError carries the message shown to the caller; the sentinel it
// wraps decides the status code and error code.
func HandleAPIError(c *gin.Context, err error) {
	message := ""
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	detail := func(code dto.ErrorCode, fallback string) *dto.ErrorDetail {
		if message != "" {
			return dto.NewErrorDetail(code, message)
		}
		return dto.NewErrorDetail(code, fallback)
	}

	switch {
	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, detail(dto.ErrorCodeValidationFailed, err.Error()))
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, detail(dto.ErrorCodeValidationFailed, "Invalid email format").WithField("email"))
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, detail(dto.ErrorCodeValidationFailed, "Password must be at least 8 characters").WithField("password"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, detail(dto.ErrorCodeValidationFailed, "Bad request"))

	// Authentication and authorization
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, detail(dto.ErrorCodeInvalidCredentials, "Invalid email or password"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, detail(dto.ErrorCodeTokenExpired, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, detail(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, detail(dto.ErrorCodeInvalidToken, "Token not found"))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, detail(dto.ErrorCodeInvalidToken, "Token revoked"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, detail(dto.ErrorCodeForbidden, "Permission denied"))

	// Occupancy state
	case errors.Is(err, apperrors.ErrRoomFull):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeRoomFull, "Room is already at full capacity"))
	case errors.Is(err, apperrors.ErrAlreadyBooked):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeAlreadyBooked, "Student already occupies this room"))
	case errors.Is(err, apperrors.ErrNotCheckedIn):
		respondError(c, http.StatusBadRequest, detail(dto.ErrorCodeNotCheckedIn, "Student is not checked in"))
	case errors.Is(err, apperrors.ErrRoomNotOperational):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceInUse, "Room is not operational"))

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceExists, "Email already exists").WithField("email"))
	case errors.Is(err, apperrors.ErrRollNumberAlreadyExists):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceExists, "Roll number already exists").WithField("rollNumber"))
	case errors.Is(err, apperrors.ErrHostelAlreadyExists),
		errors.Is(err, apperrors.ErrRoomAlreadyExists),
		errors.Is(err, apperrors.ErrStudentAlreadyExists):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceExists, "Resource already exists"))
	case errors.Is(err, apperrors.ErrHostelInUse),
		errors.Is(err, apperrors.ErrRoomInUse):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceInUse, "Resource is still in use"))
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, detail(dto.ErrorCodeResourceExists, "Conflict"))

	// Not found
	case errors.Is(err, apperrors.ErrHostelNotFound):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "Hostel not found"))
	case errors.Is(err, apperrors.ErrNoHostelsAvailable):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "No hostels available"))
	case errors.Is(err, apperrors.ErrRoomNotFound):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "Room not found"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "Student not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "Resource not found"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeServerError, "Internal server error"))
	}
}

// HandleValidationError turns gin binding errors into a 400 response
func HandleValidationError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest,
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error()))
}
