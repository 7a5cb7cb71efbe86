package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/report"
	"github.com/stemsi/attendance-backend/internal/repository"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
)

// failFromError maps domain errors onto the response envelope.
// Anything unrecognized is a 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, model.ErrInvalidDate):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
	case errors.Is(err, report.ErrInvertedRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRange)
	case errors.Is(err, model.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
	case errors.Is(err, model.ErrInvalidSessionType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSessionType)
	case errors.Is(err, service.ErrInvalidStudentID):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, service.ErrNoNames):
		response.Fail(c, http.StatusBadRequest, response.ErrNoNames)
	case errors.Is(err, service.ErrNameRequired):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"name": "name is a required field"})
	case errors.Is(err, service.ErrNotesRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrNotesRequired)
	case errors.Is(err, service.ErrUnsupportedFormat):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidFormat)
	case errors.Is(err, service.ErrInvalidMonth):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"month": err.Error()})
	default:
		_ = c.Error(err)
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// studentIDParam reads a uuid path parameter. On failure the response is already written.
func studentIDParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !validUUID(id) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id, true
}

// dateRangeQuery reads ?from=&to=. On failure the response is already written.
func dateRangeQuery(c *gin.Context) (report.DateRange, bool) {
	r, err := report.NewDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		failFromError(c, err)
		return report.DateRange{}, false
	}
	return r, true
}
