package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskservice/internal/models"
	"taskservice/internal/service"
	"taskservice/internal/validation"
)

const (
	msgValidationFailed = "Validation failed"
	msgBodyMissing      = "Required request body is missing"
	msgBodyInvalid      = "Request body is missing or contains invalid JSON"
	msgInternal         = "Internal server error"
)

// respondError translates a service error into the standard error body.
func (s *Server) respondError(c *gin.Context, err error) {
	var (
		verr *validation.Error
		nf   *service.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		s.writeError(c, http.StatusBadRequest, msgValidationFailed, verr.Messages())
	case errors.Is(err, service.ErrInvalidArgument):
		s.writeError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &nf):
		s.writeError(c, http.StatusNotFound, nf.Error(), nil)
	default:
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()),
		)
		s.writeError(c, http.StatusInternalServerError, msgInternal, nil)
	}
}

// respondBindError reports a body that could not be decoded.
func (s *Server) respondBindError(c *gin.Context, err error) {
	message := msgBodyInvalid
	if errors.Is(err, io.EOF) || c.Request.Body == nil || c.Request.Body == http.NoBody {
		message = msgBodyMissing
	}
	s.logger.Debug("unreadable request body", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	s.writeError(c, http.StatusBadRequest, message, nil)
}

// writeError writes the error body and aborts the handler chain.
func (s *Server) writeError(c *gin.Context, status int, message string, details []string) {
	if details == nil {
		details = []string{}
	}
	if status < http.StatusInternalServerError {
		s.logger.Warn("request rejected",
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.String("message", message),
		)
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Status:    status,
		Message:   message,
		Errors:    details,
		Timestamp: s.now().UTC(),
	})
}
