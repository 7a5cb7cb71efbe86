package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/report"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
	"github.com/stemsi/attendance-backend/internal/validator"
)

// SocialActionHandler handles community-service records.
type SocialActionHandler struct {
	socialActionService *service.SocialActionService
}

// NewSocialActionHandler creates a new SocialActionHandler.
func NewSocialActionHandler(socialActionService *service.SocialActionService) *SocialActionHandler {
	return &SocialActionHandler{socialActionService: socialActionService}
}

type socialActionView struct {
	model.SocialActionRecord
	TotalHours float64 `json:"total_hours"`
}

func newSocialActionView(rec model.SocialActionRecord) socialActionView {
	return socialActionView{SocialActionRecord: rec, TotalHours: report.ComputeTotalServiceHours(&rec)}
}

// ListSocialActions godoc
// GET /api/v1/social-actions
func (h *SocialActionHandler) ListSocialActions(c *gin.Context) {
	records, err := h.socialActionService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	views := make(map[string]socialActionView, len(records))
	for id, rec := range records {
		views[id] = newSocialActionView(rec)
	}
	response.Success(c, http.StatusOK, gin.H{"records": views})
}

// SaveSocialAction godoc
// PATCH /api/v1/social-actions/:student_id
// Only the fields present in the body change.
func (h *SocialActionHandler) SaveSocialAction(c *gin.Context) {
	id, ok := studentIDParam(c, "student_id")
	if !ok {
		return
	}

	var req model.UpdateSocialActionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.socialActionService.Save(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"record": newSocialActionView(*rec)})
}
