package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
	"github.com/stemsi/attendance-backend/internal/validator"
)

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// StudentHandler handles roster management.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students?q=&page=&per_page=
// Lists the roster, optionally filtered by name. Without page the whole roster is returned.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		failFromError(c, err)
		return
	}

	if c.Query("page") == "" {
		response.Success(c, http.StatusOK, gin.H{"students": students})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(response.DefaultPerPage)))
	pagination := response.NewPagination(page, perPage, len(students))
	start, end := pagination.Window()
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students[start:end]}, pagination)
}

// CreateStudent godoc
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// BulkImport godoc
// POST /api/v1/students/bulk
// Creates one student per name in a pasted list (comma or newline separated).
func (h *StudentHandler) BulkImport(c *gin.Context) {
	var req model.BulkImportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	students, err := h.studentService.BulkImport(c.Request.Context(), req.Names)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"students": students, "count": len(students)})
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := studentIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
// Hard delete. Attendance and session history for the student is kept but no longer reported.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := studentIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student deleted"})
}
