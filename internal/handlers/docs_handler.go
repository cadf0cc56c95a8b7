package handlers

import (
	"tienda/internal/docs"

	"github.com/gofiber/fiber/v2"
)

// DocsHandler serves the interactive API documentation.
type DocsHandler struct{}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// RegisterRoutes registers the documentation routes.
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	docsRoutes := router.Group("/docs")
	docsRoutes.Get("/", h.HandleUI)
	docsRoutes.Get("/openapi.json", h.HandleSpec)
}

// HandleUI serves the Swagger UI page. It is never cached so doc updates
// show up immediately.
func (h *DocsHandler) HandleUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Type("html", "utf-8")
	return c.Send(docs.UI)
}

// HandleSpec serves the OpenAPI document.
func (h *DocsHandler) HandleSpec(c *fiber.Ctx) error {
	c.Type("json", "utf-8")
	return c.Send(docs.OpenAPI)
}
