package main

import (
	"os"
	"os/signal"
	"syscall"

	"tienda/internal/app"
	"tienda/internal/config"
	"tienda/internal/database"
	"tienda/internal/logger"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(config.New())
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// --- Product store ---
	var (
		productRepo repositories.ProductRepository
		ping        func() error
	)
	if cfg.Database.Driver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
		log.Warn().Msg("using the in-memory product store; data is lost on exit")
	} else {
		db, err := database.Open(cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Error().Err(err).Msg("error closing database")
			}
		}()
		productRepo = repositories.NewGORMProductRepository(db)
		ping = func() error { return database.Ping(db) }
	}

	if cfg.App.Seed {
		seedProducts(productRepo, log)
	}

	// --- Product events ---
	// publisher stays a nil interface when events are disabled.
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:   cfg.RabbitMQ.URL,
			Queue: cfg.RabbitMQ.Queue,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing RabbitMQ client")
			}
		}()
		publisher = mqClient

		if err := mqClient.ConsumeProductEvents(rabbitmq.LogProductEvent(log)); err != nil {
			log.Error().Err(err).Msg("failed to start product event consumer")
		}
	}

	// --- HTTP server ---
	server := app.New(app.Options{
		FrontendURL: cfg.App.FrontendURL,
		Repository:  productRepo,
		Publisher:   publisher,
		Ping:        ping,
		AccessLog:   os.Stdout,
		Log:         log,
	})

	go func() {
		log.Info().Str("addr", cfg.App.Port).Msg("starting server")
		if err := server.Listen(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// seedProducts populates an empty product store with some initial data.
func seedProducts(repo repositories.ProductRepository, log zerolog.Logger) {
	existing, err := repo.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("could not check products before seeding")
		return
	}
	if len(existing) > 0 {
		log.Info().Int("products", len(existing)).Msg("store already has products, skipping seed")
		return
	}

	products := []models.Product{
		{Name: "Monitor Curvo 49 Pulgadas", Price: decimal.RequireFromString("599.99"), Availability: true},
		{Name: "Teclado Mecanico", Price: decimal.NewFromInt(75), Availability: true},
		{Name: "Mouse Inalambrico", Price: decimal.RequireFromString("25.50"), Availability: true},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Error().Err(err).Str("product", products[i].Name).Msg("error seeding product")
			continue
		}
		log.Info().Str("product", products[i].Name).Uint("id", products[i].ID).Msg("seeded product")
	}
}
