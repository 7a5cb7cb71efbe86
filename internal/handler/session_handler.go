package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
	"github.com/stemsi/attendance-backend/internal/validator"
)

// SessionHandler handles preceptoría session logs.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// ListSessions godoc
// GET /api/v1/students/:id/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	id, ok := studentIDParam(c, "id")
	if !ok {
		return
	}

	logs, err := h.sessionService.List(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sessions": logs})
}

// AddSession godoc
// POST /api/v1/students/:id/sessions
func (h *SessionHandler) AddSession(c *gin.Context) {
	id, ok := studentIDParam(c, "id")
	if !ok {
		return
	}

	var req model.CreateSessionLogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	log, err := h.sessionService.Add(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": log})
}
