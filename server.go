package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"notesapi/config"
	"notesapi/handler"
	"notesapi/middleware"
	"notesapi/services"
	"notesapi/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// setupRouter builds the HTTP surface. A nil limiter disables rate limiting.
func setupRouter(cfg config.ServerConfig, notesService *usecase.NotesService, limiter services.RateLimiter) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	router.Use(
		middleware.EnhancedRecoveryMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.NoStoreMiddleware(),
		middleware.RequestSizeLimiter(cfg.MaxBodyBytes),
	)

	router.NoRoute(handler.RouteNotFoundHandler)
	router.NoMethod(handler.MethodNotAllowedHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// liveness probes are not rate limited
	router.GET("/api/healthchecker", handler.HealthCheckHandler)

	api := router.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}

	handler.NewNotesHandler(notesService).RegisterRoutes(api)

	return router
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for up to
// shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
