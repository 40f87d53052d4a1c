package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter, writing a 400 response on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID")
		errorDetail = errorDetail.WithDetails("ID must be a positive number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: errorDetail, Timestamp: time.Now()})
		return 0, false
	}
	return id, true
}

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondBindingError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: errorDetail, Timestamp: time.Now()})
}
