package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/config"
	"alfredoptarigan/job-predictor/internal/handlers"
	applog "alfredoptarigan/job-predictor/internal/logger"
	"alfredoptarigan/job-predictor/internal/repositories"
	"alfredoptarigan/job-predictor/internal/services"
)

func main() {
	// Load configuration
	cfg, envLoaded := config.Load()

	zl, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if !envLoaded {
		zl.Info("no .env file found, using environment and defaults")
	}

	// Load model artifacts
	storageService := services.NewStorageService(cfg.Model.Dir)
	artifacts := services.LoadArtifacts(storageService, zl)

	encoder := services.NewFeatureEncoder(artifacts)
	predictor := services.NewPredictor(artifacts, zl)

	// Initialize database; the service keeps predicting without it
	var (
		predictionRepo repositories.PredictionRepository
		recorder       services.Recorder
		worker         services.Worker
	)
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, zl)
		if err != nil {
			zl.Error("database unavailable, predictions will not be persisted", zap.Error(err))
		} else {
			predictionRepo = repositories.NewPredictionRepository(db)
			worker = services.NewWorker(
				predictionRepo,
				zl,
				cfg.Worker.Concurrency,
				cfg.Worker.QueueSize,
				cfg.Worker.WriteTimeout,
			)
			worker.Start(context.Background())
			recorder = worker
		}
	} else {
		zl.Info("persistence disabled")
	}

	predictionService := services.NewPredictionService(encoder, predictor, recorder, zl)

	// Initialize Handlers
	predictHandler := handlers.NewPredictHandler(predictionService, zl)
	historyHandler := handlers.NewHistoryHandler(predictionRepo, zl)
	healthHandler := handlers.NewHealthHandler(artifacts, predictionRepo != nil)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Job Role Predictor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, predictHandler, historyHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}

	if worker != nil {
		worker.Stop()
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
