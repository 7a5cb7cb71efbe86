package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
	"github.com/stemsi/attendance-backend/internal/validator"
)

// AttendanceHandler handles daily attendance taking.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// GetDay godoc
// GET /api/v1/attendance/:date
func (h *AttendanceHandler) GetDay(c *gin.Context) {
	date := c.Param("date")
	records, err := h.attendanceService.GetDay(c.Request.Context(), date)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "records": records})
}

// SaveDay godoc
// PUT /api/v1/attendance/:date
// Upserts the given statuses; students left out keep their stored status.
func (h *AttendanceHandler) SaveDay(c *gin.Context) {
	date := c.Param("date")
	if !model.IsISODate(date) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	var req model.SaveAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.attendanceService.SaveDay(c.Request.Context(), date, req.Records)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "records": records})
}
