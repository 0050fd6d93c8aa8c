package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Healthz(c *gin.Context)
}

type HealthHandler struct {
	youtubeConfigured bool
	sessionStore      string
}

func NewHealthHandler(youtubeConfigured bool, sessionStore string) IHealthHandler {
	return &HealthHandler{youtubeConfigured: youtubeConfigured, sessionStore: sessionStore}
}

// Healthz returns OK for health checks
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"youtube":       h.youtubeConfigured,
		"session_store": h.sessionStore,
	})
}
