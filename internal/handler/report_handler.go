package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
)

// ReportHandler serves the aggregated views and their exports.
type ReportHandler struct {
	reportService *service.ReportService
	now           func() (int, int)
}

// NewReportHandler creates a new ReportHandler. yearMonth supplies the default
// calendar month.
func NewReportHandler(reportService *service.ReportService, yearMonth func() (int, int)) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: yearMonth}
}

// Summary godoc
// GET /api/v1/reports/summary?from=&to=
// Per-student attendance and session figures plus the matrix table.
func (h *ReportHandler) Summary(c *gin.Context) {
	rng, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.reportService.Summary(c.Request.Context(), rng))
}

// ExportSummary godoc
// GET /api/v1/reports/summary/export?from=&to=&format=csv|tsv|xlsx
func (h *ReportHandler) ExportSummary(c *gin.Context) {
	rng, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"), service.FormatCSV)
	if err != nil {
		failFromError(c, err)
		return
	}

	file, err := h.reportService.Export(c.Request.Context(), rng, format)
	if err != nil {
		failFromError(c, err)
		return
	}
	writeFile(c, file)
}

// Calendar godoc
// GET /api/v1/reports/calendar?year=&month=
// Defaults to the current month.
func (h *ReportHandler) Calendar(c *gin.Context) {
	year, month := h.now()

	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"year": "year must be a number"})
			return
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"month": "month must be a number"})
			return
		}
		month = v
	}

	cal, err := h.reportService.Calendar(c.Request.Context(), year, month)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

// Daily godoc
// GET /api/v1/reports/daily?from=&to=
func (h *ReportHandler) Daily(c *gin.Context) {
	rng, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.reportService.Daily(c.Request.Context(), rng))
}

// SocialAction godoc
// GET /api/v1/reports/social-action?format=json|tsv|csv|xlsx
func (h *ReportHandler) SocialAction(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"), service.FormatJSON)
	if err != nil {
		failFromError(c, err)
		return
	}

	if format == service.FormatJSON {
		response.Success(c, http.StatusOK, h.reportService.SocialAction(c.Request.Context()))
		return
	}

	file, err := h.reportService.ExportSocialAction(c.Request.Context(), format)
	if err != nil {
		failFromError(c, err)
		return
	}
	writeFile(c, file)
}

// Overdue godoc
// GET /api/v1/reports/overdue
// Students without a Student-type preceptoría within the threshold.
func (h *ReportHandler) Overdue(c *gin.Context) {
	response.Success(c, http.StatusOK, h.reportService.Overdue(c.Request.Context()))
}

func writeFile(c *gin.Context, file *service.ExportFile) {
	disposition := "attachment"
	if file.Inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
