// @title MCQ Generator API
// @version 1.0
// @description Generates multiple-choice quizzes from uploaded PDF and text documents.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mcqgen/cmd/api/docs"
	"mcqgen/internal/app"
	"mcqgen/internal/config"
	"mcqgen/internal/handler"
	"mcqgen/internal/logger"
	"mcqgen/internal/middleware"
	"mcqgen/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	pipeline, err := app.Build(cfg)
	if err != nil {
		appLogger.Fatal("Failed to build quiz pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	renderer, err := view.New()
	if err != nil {
		appLogger.Fatal("Failed to parse templates", zap.Error(err))
	}
	mcqHandler := handler.NewMCQHandler(pipeline.Service, renderer, pipeline.Cache, cfg.LLM)

	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    bodyLimit(cfg.Upload.MaxBytes),
		ErrorHandler: mcqHandler.ErrorHandler(middleware.ErrorHandler()),
	})

	server.Use(recover.New())
	server.Use(middleware.RequestID())
	server.Use(middleware.RequestLogger())
	server.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
		MaxAge:        300,
	}))

	server.Get("/swagger/*", swagger.HandlerDefault)

	// HTML form
	server.Get("/", mcqHandler.Index)
	server.Post("/", mcqHandler.Submit)

	// API group
	apiGroup := server.Group("/api")
	apiGroup.Get("/health", mcqHandler.Health)
	apiGroup.Post("/quizzes", middleware.RequireMultipart(), mcqHandler.GenerateQuiz)
	apiGroup.Post("/quizzes/export", middleware.RequireMultipart(), mcqHandler.ExportQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := server.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// bodyLimit leaves room for the form fields around the largest upload. Without
// an upload limit Fiber's default applies.
func bodyLimit(maxUpload int64) int {
	if maxUpload <= 0 {
		return fiber.DefaultBodyLimit
	}
	return int(maxUpload) + 1024*1024
}
