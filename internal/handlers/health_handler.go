package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the service and its database are reachable.
type HealthHandler struct {
	ping func() error
}

// NewHealthHandler creates a HealthHandler. ping may be nil when the service
// runs without a database.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// RegisterRoutes registers the health check route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth responds 200 when healthy and 503 when the database ping fails.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	database := "not configured"
	status := fiber.StatusOK
	if h.ping != nil {
		database = "connected"
		if err := h.ping(); err != nil {
			database = "unreachable"
			status = fiber.StatusServiceUnavailable
		}
	}

	state := "healthy"
	if status != fiber.StatusOK {
		state = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
