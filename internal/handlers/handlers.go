package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sevahealth/sahaya/internal/config"
	"github.com/sevahealth/sahaya/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	cfg      *config.Config
	pipeline *services.Pipeline
	store    *services.FileStore
	chatbot  *services.Chatbot
	logger   zerolog.Logger
}

// New creates a new Handler instance
func New(cfg *config.Config, pipeline *services.Pipeline, store *services.FileStore, chatbot *services.Chatbot, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		pipeline: pipeline,
		store:    store,
		chatbot:  chatbot,
		logger:   logger,
	}
}

// Detail returns an error response in the {"detail": message} shape used by
// all non-200 responses.
func Detail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"detail": message,
	})
}

// Health handles the liveness probe
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"service": "Backend Ready",
	})
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return Detail(c, code, message)
}
