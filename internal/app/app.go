// Package app assembles the fiber application: middleware, routes and the
// product stack behind them.
package app

import (
	"errors"
	"io"

	"tienda/internal/handlers"
	"tienda/internal/middleware"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// FrontendURL is the only origin admitted by the CORS gate.
	FrontendURL string
	// Repository is the product store.
	Repository repositories.ProductRepository
	// Publisher receives product events. Leave nil to disable events.
	Publisher services.EventPublisher
	// Ping checks the database for the health endpoint. May be nil.
	Ping func() error
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
	Log       zerolog.Logger
}

// New builds the fiber application serving the product API under /api.
func New(opts Options) *fiber.App {
	log := opts.Log

	app := fiber.New(fiber.Config{
		AppName:      "tienda",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if opts.AccessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: opts.AccessLog,
		}))
	}
	app.Use(middleware.CORS(opts.FrontendURL, log))

	productService := services.NewProductService(opts.Repository, opts.Publisher, log)
	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler(opts.Ping)
	docsHandler := handlers.NewDocsHandler()

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	healthHandler.RegisterRoutes(app)
	docsHandler.RegisterRoutes(app)

	return app
}

// errorHandler writes {"error": message}. Errors that are not *fiber.Error
// are logged and reported as a generic 500.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Error().Err(err).
			Interface("request_id", c.Locals("requestid")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled request error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
}
