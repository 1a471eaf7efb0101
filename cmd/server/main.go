package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/breed"
	"github.com/spycat-agency/service-mission/internal/common/database"
	"github.com/spycat-agency/service-mission/internal/common/kafka"
	"github.com/spycat-agency/service-mission/internal/common/logger"
	"github.com/spycat-agency/service-mission/internal/config"
	missionEvents "github.com/spycat-agency/service-mission/internal/events"
	"github.com/spycat-agency/service-mission/internal/repository"
	"github.com/spycat-agency/service-mission/internal/schema"
	"go.uber.org/zap"
)

const serviceName = "service-mission"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Create the database if needed, then open the shared pool
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := schema.EnsureDatabaseExists(bootCtx, cfg.DBConfig, log); err != nil {
		log.Fatal("failed to ensure database exists", zap.Error(err))
	}
	bootCancel()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := schema.EnsureSchema(cfg.DBConfig, log); err != nil {
		log.Fatal("failed to ensure schema", zap.Error(err))
	}

	// Event producer; a no-op when no brokers are configured
	var producer kafka.Publisher = kafka.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		producer = kafkaProducer
	} else {
		log.Warn("KAFKA_BROKERS not set, mission events are disabled")
	}

	// Initialize repositories
	catRepo := repository.NewGormCatRepository(db)
	missionRepo := repository.NewGormMissionRepository(db)
	noteRepo := repository.NewGormNoteRepository(db)

	// Initialize breed catalogue client
	breedClient := breed.NewClient(cfg.BreedAPI.BaseURL, cfg.BreedAPI.APIKey, cfg.BreedAPI.Timeout, log)

	// Initialize application services
	catService := application.NewCatService(catRepo, breedClient, producer, log)
	missionService := application.NewMissionService(missionRepo, catRepo, producer, log)
	noteService := application.NewNoteService(noteRepo, log)

	// Start the target report consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.KafkaConfig.Enabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + serviceName
		reportConsumer := missionEvents.NewTargetReportConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			missionService,
			log,
		)
		defer func() { _ = reportConsumer.Close() }()

		go func() {
			log.Info("starting target report consumer")
			if err := reportConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("target report consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(db, catService, missionService, noteService, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
