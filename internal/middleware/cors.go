package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
)

// CORS admits only requests whose Origin header equals allowedOrigin exactly.
// A missing header counts as the empty origin. Rejected requests never reach
// routing; admitted cross-origin requests get the CORS response headers, and
// preflight requests are answered here.
func CORS(allowedOrigin string, log zerolog.Logger) fiber.Handler {
	var headers fiber.Handler
	if allowedOrigin != "" {
		headers = cors.New(cors.Config{
			AllowOrigins: allowedOrigin,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		})
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin != allowedOrigin {
			log.Warn().
				Str("origin", origin).
				Str("path", c.Path()).
				Msg("request rejected by CORS policy")
			return fiber.NewError(fiber.StatusForbidden, "Error de CORS")
		}
		if headers == nil {
			return c.Next()
		}
		return headers(c)
	}
}
