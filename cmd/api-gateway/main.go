package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/uni-timetable-api/api/swagger"
	"github.com/noah-isme/uni-timetable-api/internal/handler"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	"github.com/noah-isme/uni-timetable-api/internal/router"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/cache"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

// @title University Timetable API
// @version 1.0.0
// @description Master schedule management with conflict detection, schedule metrics and club room booking.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db.DB, logr.Named("migrate")); err != nil {
			return err
		}
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	}

	eventRepo := repository.NewEventRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, cfg.Redis.KeyPrefix, logr.Named("cache"))
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analysis.CacheTTL, logr.Named("cache"), cfg.Analysis.CacheEnabled && redisClient != nil)
	clock := timetable.SystemClock(cfg.Timetable.Location())

	analysisSvc := service.NewScheduleAnalysisService(eventRepo, referenceRepo, cacheSvc, metrics, clock, logr.Named("analysis")).
		WithTTLs(cfg.Analysis.CacheTTL, cfg.Analysis.ReferenceCacheTTL)
	refresher := service.NewAnalysisRefresher(analysisSvc, metrics, jobs.QueueConfig{
		Workers: cfg.Analysis.RefreshWorkers,
		Logger:  logr.Named("refresher"),
	})
	refresher.Start(ctx)
	defer refresher.Stop()

	eventSvc := service.NewEventService(eventRepo, analysisSvc, refresher, validate, logr.Named("events"))
	clubSvc := service.NewClubBookingService(eventRepo, analysisSvc, refresher, clock, metrics, validate, logr.Named("clubs"))
	timetableSvc := service.NewTimetableService(eventRepo, analysisSvc, refresher, metrics, validate, logr.Named("timetables"), cfg.Analysis.EvaluationConcurrency)
	exportSvc := service.NewExportService(eventRepo, analysisSvc, clock, logr.Named("exports"))
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, Expiry: cfg.JWT.Expiration})

	handlers := router.Handlers{
		Events:    handler.NewEventHandler(eventSvc),
		Schedule:  handler.NewScheduleHandler(analysisSvc),
		Clubs:     handler.NewClubBookingHandler(clubSvc),
		Timetable: handler.NewTimetableHandler(timetableSvc),
		Exports:   handler.NewExportHandler(exportSvc),
		System: handler.NewMetricsHandler(metrics, map[string]handler.ReadinessCheck{
			"database": db.PingContext,
			"cache":    cacheRepo.Ping,
		}),
	}
	engine := router.Setup(cfg, handlers, tokenSvc, metrics, logr)

	// Warm the analysis cache before the first dashboard request.
	refresher.ScheduleChanged(ctx, "startup")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
