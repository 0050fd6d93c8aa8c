package server

import (
	"net/http"
	"time"

	"yt-dashboard/infrastructure/configuration"
	httpHandler "yt-dashboard/interfaces/http"
	"yt-dashboard/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter wires every route. youtubeHandler and sessionHandler are nil
// when no API key is configured; their routes then answer 503.
func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	sessionHandler httpHandler.ISessionHandler,
	metricsHandler http.Handler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     configuration.C.Cors.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := router.Group("api")

	if youtubeHandler != nil {
		api.GET("/search", youtubeHandler.SearchVideos)
		api.GET("/search/suggestions", youtubeHandler.GetSuggestions)
		api.GET("/videos/:videoId", youtubeHandler.GetVideoDetails)
		api.GET("/videos/:videoId/comments", youtubeHandler.GetVideoComments)
	} else {
		api.GET("/search", notConfigured)
		api.GET("/search/suggestions", notConfigured)
		api.GET("/videos/:videoId", notConfigured)
		api.GET("/videos/:videoId/comments", notConfigured)
	}

	sessions := api.Group("/sessions")
	if sessionHandler != nil {
		sessions.POST("", sessionHandler.Create)
		sessions.GET("/:sessionId", sessionHandler.Get)
		sessions.POST("/:sessionId/search", sessionHandler.Search)
		sessions.POST("/:sessionId/pages/:page", sessionHandler.GoToPage)
		sessions.POST("/:sessionId/retry", sessionHandler.Retry)
		sessions.DELETE("/:sessionId", sessionHandler.Delete)
	} else {
		sessions.POST("", notConfigured)
		sessions.GET("/:sessionId", notConfigured)
		sessions.POST("/:sessionId/search", notConfigured)
		sessions.POST("/:sessionId/pages/:page", notConfigured)
		sessions.POST("/:sessionId/retry", notConfigured)
		sessions.DELETE("/:sessionId", notConfigured)
	}

	return router
}

func notConfigured(ctx *gin.Context) {
	ctx.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "YouTube API not configured",
		"message": "Please configure YOUTUBE_API_KEY to enable search and video features",
	})
}
