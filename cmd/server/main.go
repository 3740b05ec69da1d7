package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/sevahealth/sahaya/internal/config"
	"github.com/sevahealth/sahaya/internal/handlers"
	"github.com/sevahealth/sahaya/internal/logging"
	"github.com/sevahealth/sahaya/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	zl, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	// Storage directories for uploads and generated audio
	store, err := services.NewFileStore(cfg.UploadDir, cfg.AudioDir)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to initialize file store")
	}

	// Recognition engines are constructed lazily, one per language
	pool := services.NewEnginePool(services.NewTesseractEngine, zl)
	defer pool.Close()

	synth := services.NewGoogleSynthesizer(store.AudioDir(), cfg.TTSTimeout)

	// Optional S3 archive for artifacts
	var archive *services.ArchiveService
	if cfg.S3Enabled && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		archive, err = services.NewArchiveService(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL, zl)
		if err != nil {
			zl.Warn().Err(err).Msg("failed to initialize artifact archive, continuing without it")
			archive = nil
		} else if err := archive.EnsureBucket(context.Background()); err != nil {
			zl.Warn().Err(err).Msg("failed to ensure archive bucket exists")
		}
	}

	pipeline := services.NewPipeline(store, pool, synth, archive, cfg.OCRTimeout, zl)
	chatbot := services.NewChatbot()

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(cfg, pipeline, store, chatbot, zl)

	// Liveness probes
	app.Get("/", h.Health)
	app.Get("/health", h.Health)

	// OCR pipeline
	app.Post("/upload-ocr", h.UploadOCR)
	app.Get("/audio/:name", h.GetAudio)

	// Chatbot
	app.Post("/chat", h.Chat)

	zl.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal().Err(err).Msg("server stopped")
	}
}
