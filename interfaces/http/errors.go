package http

import (
	"errors"
	"net/http"

	"yt-dashboard/domain/model"
	"yt-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain error kinds to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrVideoNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrSearchFailure), errors.Is(err, model.ErrStatsFailure), errors.Is(err, model.ErrCommentsUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body shared by all handlers. extra is merged into it.
func respondError(ctx *gin.Context, err error, message string, extra gin.H) {
	status := statusFor(err)
	body := gin.H{
		"error":   message,
		"message": err.Error(),
	}
	if status == http.StatusBadGateway {
		body["retry"] = true
	}
	for k, v := range extra {
		body[k] = v
	}

	entry := logger.GetLogger().WithField("error", err).WithField("status", status).WithField("path", ctx.FullPath()).WithField("request_id", ctx.GetString("request_id"))
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
	ctx.JSON(status, body)
}
