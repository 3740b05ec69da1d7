package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/sevahealth/sahaya/internal/services"
)

const maxUploadBytes = 10 * 1024 * 1024

// UploadOCR handles image upload, recognition, and speech generation
func (h *Handler) UploadOCR(c *fiber.Ctx) error {
	// Validate language before touching the file: an unsupported code must
	// persist nothing and construct no engine.
	lang := c.FormValue("language_code")
	if !services.IsSupportedLanguage(lang) {
		return Detail(c, fiber.StatusBadRequest, "Unsupported language.")
	}

	// Get the uploaded file
	file, err := c.FormFile("uploadFile")
	if err != nil {
		return Detail(c, fiber.StatusBadRequest, "uploadFile is required")
	}

	// Validate file type
	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return Detail(c, fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}

	// Validate file size
	if file.Size > maxUploadBytes {
		return Detail(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Detail(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return Detail(c, fiber.StatusInternalServerError, "failed to read file")
	}

	result, err := h.pipeline.ProcessUpload(c.Context(), data, file.Filename, lang)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedLanguage) {
			return Detail(c, fiber.StatusBadRequest, "Unsupported language.")
		}
		return Detail(c, fiber.StatusInternalServerError, err.Error())
	}

	response := fiber.Map{
		"text":      result.Text,
		"audio_url": nil,
	}
	if result.AudioName != "" {
		response["audio_url"] = "/audio/" + result.AudioName
	}
	return c.JSON(response)
}

// GetAudio serves a generated audio artifact by name
func (h *Handler) GetAudio(c *fiber.Ctx) error {
	data, err := h.store.ReadAudio(c.Params("name"))
	if err != nil {
		if errors.Is(err, services.ErrAudioNotFound) {
			return Detail(c, fiber.StatusNotFound, "Audio not found.")
		}
		return Detail(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(data)
}

// isValidImageType checks if the content type is a supported image format
func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}
