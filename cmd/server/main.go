package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/bank"
	"github.com/opteron-x86/exam-ace/internal/cache"
	"github.com/opteron-x86/exam-ace/internal/config"
	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/handlers"
	"github.com/opteron-x86/exam-ace/internal/repositories/sqlstore"
	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
	"github.com/opteron-x86/exam-ace/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := sqlstore.Migrate(db); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	cacheService := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			cacheService = cache.NewRedisCache(redisClient)
			defer redisClient.Close()
		}
	}

	bus := events.NewBus(utils.ToSlogLogger(logger))
	defer bus.Close()

	validator := utils.NewValidator()
	repo := sqlstore.New(db)
	banks := bank.NewStore(cfg.BanksDir)

	serviceManager := services.NewServiceManager(
		repo,
		banks,
		config.DefaultScoring(),
		cacheService,
		bus,
		logger,
		validator,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Completed and deleted sessions change the aggregate stats, so drop the
	// cached copy when either event lands.
	stats := serviceManager.Stats()
	if err := bus.Subscribe(ctx, func(ctx context.Context, event *events.QuizEvent) {
		switch event.Type {
		case events.QuizCompleted, events.SessionDeleted:
			stats.Invalidate(ctx)
		}
	}); err != nil {
		logger.Error("Failed to subscribe to quiz events", "error", err)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger), gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, validator, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Quiz server listening", "port", cfg.Port, "banks_dir", cfg.BanksDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
