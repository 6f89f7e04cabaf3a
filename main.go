package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapi/config"
	"notesapi/repository"
	"notesapi/repository/memory"
	"notesapi/services"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded, using process environment")
	}

	if err := run(); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
	log.Info("server stopped")
}

func run() (err error) {
	serverCfg := config.LoadServerConfig()
	logCloser := utils.SetupLogging(serverCfg.Logging)
	defer func() { err = multierr.Append(err, logCloser.Close()) }()

	gin.SetMode(serverCfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notesRepo, closeStore, err := openNotesRepository(ctx, serverCfg.StorageBackend)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeStore()) }()

	limiter, closeLimiter, err := openRateLimiter(ctx, serverCfg.RateLimit)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLimiter()) }()

	notesService := usecase.NewNotesService(notesRepo, utils.RealTime{})
	router := setupRouter(serverCfg, notesService, limiter)

	srv := &http.Server{
		Addr:              ":" + serverCfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(ctx, srv, serverCfg.ShutdownTimeout)
}

// openNotesRepository returns the configured store and a func releasing it.
func openNotesRepository(ctx context.Context, backend string) (repository.NoteRepository, func() error, error) {
	if backend == config.StorageMemory {
		log.Warn("using in-memory notes store, data is lost on exit")
		return memory.NewRepository(), func() error { return nil }, nil
	}

	dbCfg := config.LoadDatabaseConfig()
	client, err := repository.NewMongoClient(ctx, dbCfg)
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() error {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(disconnectCtx)
	}

	notesRepo := repository.GetNotesRepo(client, dbCfg)
	if err := repository.SetupIndexes(ctx, notesRepo.MongoCollection); err != nil {
		return nil, nil, multierr.Append(err, disconnect())
	}

	log.WithFields(log.Fields{
		"database":   dbCfg.DatabaseName,
		"collection": dbCfg.NoteCollection,
	}).Info("connected to MongoDB")
	return notesRepo, disconnect, nil
}

// openRateLimiter returns nil when rate limiting is disabled. With a Redis URL the
// window is shared across replicas, otherwise each process keeps its own buckets.
func openRateLimiter(ctx context.Context, cfg config.RateLimitConfig) (services.RateLimiter, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Enabled() {
		return nil, noop, nil
	}

	if cfg.RedisURL == "" {
		return services.NewLocalRateLimiter(cfg.RPS, cfg.Burst, utils.RealTime{}), noop, nil
	}

	client, err := services.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("rate limiting through Redis")
	return services.NewRedisRateLimiter(client, cfg.RPS, cfg.Burst, cfg.Window, utils.RealTime{}), client.Close, nil
}
