package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// Chat answers a chatbot message. This endpoint is total: malformed input
// yields an apology reply, never a non-200 status.
func (h *Handler) Chat(c *fiber.Ctx) (err error) {
	lang := c.FormValue("lang")
	if lang == "" {
		lang = "en"
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().Interface("panic", r).Msg("chat handler panicked")
			err = c.JSON(fiber.Map{"reply": h.chatbot.Apology(lang)})
		}
	}()

	message, ok := formField(c, "message")
	if !ok {
		return c.JSON(fiber.Map{"reply": h.chatbot.Apology(lang)})
	}

	return c.JSON(fiber.Map{"reply": h.chatbot.Respond(message, lang)})
}

// formField returns a form value and whether the field was present at all.
// Unlike FormValue it distinguishes a missing field from an empty one, for
// both urlencoded and multipart bodies.
func formField(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}

	var form *multipart.Form
	if form, _ = c.MultipartForm(); form != nil {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}
