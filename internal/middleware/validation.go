package middleware

import (
	"strings"

	"mcqgen/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// RequireMultipart rejects uploads that are not multipart/form-data before
// the handler tries to read the file.
func RequireMultipart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("content_type", c.Get(fiber.HeaderContentType)),
			}
		}
		return c.Next()
	}
}
