package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/database"
	"taskboard/internal/logger"
	"taskboard/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string                 `json:"error"`
	Violations []validation.Violation `json:"violations,omitempty"`
	Code       string                 `json:"code,omitempty"`
	Constraint string                 `json:"constraint,omitempty"`
	Detail     string                 `json:"detail,omitempty"`
}

// readRecord parses the request body into a record and overrides the
// parent identifier with the one taken from the path, if any.
func readRecord(c *gin.Context, pathField, pathParam string) (validation.Record, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, &validation.Error{Violations: []validation.Violation{
			{Field: "body", Constraint: validation.ConstraintJSONObject},
		}}
	}

	rec, err := validation.ParseRecord(body)
	if err != nil {
		return nil, err
	}
	if pathField != "" {
		rec.Set(pathField, c.Param(pathParam))
	}
	return rec, nil
}

// pathID parses a uuid path parameter for read routes.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := validation.ParseID(c.Param(name))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:      "invalid " + name,
			Constraint: validation.ConstraintUUID,
		})
		return uuid.Nil, false
	}
	return id, true
}

func validationFailed(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      "validation failed",
			Violations: verr.Violations,
		})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
}

func writeFailed(c *gin.Context, l *log.Logger, err error) {
	storeFailed(c, l, http.StatusUnprocessableEntity, err)
}

func readFailed(c *gin.Context, l *log.Logger, err error) {
	storeFailed(c, l, http.StatusBadRequest, err)
}

func storeFailed(c *gin.Context, l *log.Logger, status int, err error) {
	l.Warn("store operation failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)

	var se *database.StoreError
	if !errors.As(err, &se) {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	message := se.Message
	if message == "" {
		message = se.Kind.Error()
	}
	c.JSON(status, ErrorResponse{
		Error:      message,
		Code:       se.Code,
		Constraint: se.Constraint,
		Detail:     se.Detail,
	})
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return logger.Discard()
	}
	return l
}
