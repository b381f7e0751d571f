package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibenet_backend/internal/config"
	"vibenet_backend/internal/connections"
	"vibenet_backend/internal/database"
	"vibenet_backend/internal/email"
	"vibenet_backend/internal/handlers"
	"vibenet_backend/internal/logger"
	"vibenet_backend/internal/middleware"
	"vibenet_backend/internal/ratelimit"
	"vibenet_backend/internal/repositories"
	"vibenet_backend/internal/routes"
	"vibenet_backend/internal/services"
	"vibenet_backend/internal/storage"
	"vibenet_backend/internal/tracing"
	"vibenet_backend/internal/validator"
	"vibenet_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Collaborators are the external systems the services talk to.
type Collaborators struct {
	Mailer  email.Provider
	Storage storage.Storage
	Counter connections.Counter
	Limiter ratelimit.Limiter
}

func Run() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("Failed to set up tracing", "error", err)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(ctx, gormDB, database.DialectPostgres); err != nil {
		logger.Fatal("Failed to apply migrations", "error", err)
	}

	collab, closeCollab, err := NewCollaborators(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize collaborators", "error", err)
	}

	cleanup := workers.NewOTPCleanupWorker(gormDB, repositories.NewOTPRepository(), cfg.Workers.OTPCleanupSpec, cfg.OTP.Retention)
	if err := cleanup.Start(ctx); err != nil {
		logger.Fatal("Failed to start OTP cleanup worker", "error", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           SetupRouter(cfg, gormDB, collab),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	cleanup.Stop()
	closeCollab(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// NewCollaborators connects the optional backends. Redis and Mongo are only
// dialled when configured; otherwise no-op stand-ins are used.
func NewCollaborators(ctx context.Context, cfg *config.Config) (*Collaborators, func(context.Context), error) {
	var closers []func(context.Context)
	closeAll := func(ctx context.Context) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i](ctx)
		}
	}

	mailer, err := email.NewProvider(cfg.Email)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Email provider initialized", "provider", mailer.Name())

	store, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	collab := &Collaborators{
		Mailer:  mailer,
		Storage: store,
		Counter: connections.StaticCounter{},
		Limiter: ratelimit.NoopLimiter{},
	}

	if cfg.Mongo.URI != "" {
		counter, err := connections.NewMongoCounter(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func(ctx context.Context) {
			if err := counter.Close(ctx); err != nil {
				logger.Warn("Mongo disconnect failed", "error", err)
			}
		})
		collab.Counter = counter
		logger.Info("Connection counter uses MongoDB", "collection", cfg.Mongo.Collection)
	} else {
		logger.Warn("MONGO_URI not set, connection counts are always 0")
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			// The limiter is advisory; keep going and let Allow log faults.
			logger.Warn("Redis ping failed", "error", err)
		}
		closers = append(closers, func(context.Context) { _ = client.Close() })
		collab.Limiter = ratelimit.NewRedisLimiter(client, cfg.OTP.MaxVerifyAttempts, cfg.OTP.AttemptWindow)
		logger.Info("OTP attempt limiter uses Redis", "max_attempts", cfg.OTP.MaxVerifyAttempts, "window", cfg.OTP.AttemptWindow)
	} else {
		logger.Warn("REDIS_ADDR not set, OTP attempts are not limited")
	}

	return collab, closeAll, nil
}

// SetupRouter builds the full HTTP stack. Tests call it with in-memory
// collaborators.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, collab *Collaborators) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	serviceContainer := services.NewServiceContainer(cfg, services.Dependencies{
		DB:      gormDB,
		Mailer:  collab.Mailer,
		Storage: collab.Storage,
		Counter: collab.Counter,
		Limiter: collab.Limiter,
	})

	appHandlers := initializeHandlers(cfg, serviceContainer, gormDB)

	ginRouter := initializeGinRouter(cfg)

	opts := routes.Options{
		AccessGate: middleware.AccessGate(serviceContainer.UserService, cfg.Server.AccessGateFailOpen),
	}
	if local, ok := collab.Storage.(*storage.LocalStorage); ok {
		opts.StaticDir = local.Dir()
		opts.StaticContainer = cfg.Storage.ImagesContainer
	}
	routes.RegisterRoutes(ginRouter, appHandlers, opts)

	return ginRouter
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, gormDB *gorm.DB) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), !cfg.IsProduction())

	return &handlers.AppHandlers{
		AccountHandler: handlers.NewAccountHandler(baseHandler, services.AccountService),
		UserHandler:    handlers.NewUserHandler(baseHandler, services.UserService, cfg.Upload.MaxSizeMB),
		HealthHandler:  handlers.NewHealthHandler(gormDB),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout))
	return router
}
