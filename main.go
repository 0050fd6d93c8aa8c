package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/cache"
	youtubeclient "yt-dashboard/infrastructure/clients/youtube"
	"yt-dashboard/infrastructure/configuration"
	"yt-dashboard/infrastructure/logger"
	"yt-dashboard/infrastructure/metrics"
	"yt-dashboard/infrastructure/persistence"
	httpHandler "yt-dashboard/interfaces/http"
	"yt-dashboard/server"
	"yt-dashboard/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := configuration.C.App
	collector := metrics.NewCollector()

	// Keyword log is optional; without it suggestions fall back to the defaults
	psqlDb, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - keyword suggestions use defaults")
	}
	if psqlDb != nil {
		defer psqlDb.Close()
	}

	sessionStore, storeKind := InitiateSessionStore(ctx)

	youtubeConfig, err := configuration.GetYouTubeConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube configuration not found - YouTube features will be disabled")
	}

	var youtubeHandler httpHandler.IYouTubeHandler
	var sessionHandler httpHandler.ISessionHandler

	if youtubeConfig.Configured() {
		youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
			APIKey:            youtubeConfig.APIKey,
			Endpoint:          youtubeConfig.Endpoint,
			RequestsPerSecond: youtubeConfig.RequestsPerSecond,
			Burst:             youtubeConfig.Burst,
			Timeout:           youtubeConfig.Timeout,
			Recorder:          collector,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to initialize YouTube client - YouTube features will be disabled")
		} else {
			searchUC := usecase.NewSearchUseCase(youtubeClient, collector)
			if psqlDb != nil {
				searchUC = searchUC.WithSearchLog(persistence.NewSearchLogRepository(psqlDb))
			}
			videoUC := usecase.NewVideoUseCase(youtubeClient)
			sessionUC := usecase.NewSessionUseCase(sessionStore, searchUC, collector, configuration.C.Session.PageBudget)

			youtubeHandler = httpHandler.NewYouTubeHandler(searchUC, videoUC)
			sessionHandler = httpHandler.NewSessionHandler(sessionUC)
		}
	} else {
		logger.GetLogger().Info("YouTube API key not configured - search and video routes will answer 503")
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"youtube":      youtubeHandler != nil,
		"sessionStore": storeKind,
		"keywordLog":   psqlDb != nil,
		"pageBudget":   configuration.C.Session.PageBudget,
	}).Info("Dashboard initialization summary")

	healthHandler := httpHandler.NewHealthHandler(youtubeHandler != nil, storeKind)
	router := server.InitiateRouter(healthHandler, youtubeHandler, sessionHandler, collector.Handler())

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Graceful shutdown did not complete")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase opens PostgreSQL for the keyword log and makes sure its table exists.
// It returns (nil, nil) when no database is configured.
func InitiateDatabase() (*sql.DB, error) {
	if !configuration.C.PostgresConfigured() {
		return nil, nil
	}
	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := persistence.EnsureSearchLogSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure search log schema: %w", err)
	}
	logger.GetLogger().Info("PostgreSQL connected")
	return db, nil
}

// InitiateSessionStore picks redis when asked for and reachable, memory otherwise
func InitiateSessionStore(ctx context.Context) (repository.ISearchSessionStore, string) {
	cfg := configuration.C.Session
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute

	if cfg.Store == "redis" {
		if configuration.C.RedisAddr() == "" {
			logger.GetLogger().Warn("SESSION_STORE=redis but REDIS_HOST is empty - using in-memory sessions")
		} else if client, err := cache.NewCache(ctx, configuration.C.RedisClient); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - using in-memory sessions")
		} else {
			logger.GetLogger().WithField("addr", configuration.C.RedisAddr()).Info("Redis session store connected")
			return cache.NewRedisSessionStore(client, ttl), "redis"
		}
	}
	return cache.NewMemorySessionStore(cfg.MaxSessions, ttl), "memory"
}
