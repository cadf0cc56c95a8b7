// Package config loads the service configuration from the environment.
//
// A `.env` file in the working directory is loaded first when present;
// real environment variables take precedence over it.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Database drivers understood by the database package.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the root configuration object for the application.
type Config struct {
	App      AppConfig      `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	RabbitMQ RabbitMQConfig `mapstructure:",squash"`
	Log      LogConfig      `mapstructure:",squash"`
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Port string `mapstructure:"APP_PORT" validate:"required"`
	Seed bool   `mapstructure:"APP_SEED"`
	// FrontendURL is the only origin allowed to call the API.
	FrontendURL string `mapstructure:"FRONTEND_URL" validate:"omitempty,origin"`
}

// DatabaseConfig selects and locates the product store.
type DatabaseConfig struct {
	Driver string `mapstructure:"DATABASE_DRIVER" validate:"required,oneof=postgres sqlite memory"`
	DSN    string `mapstructure:"DATABASE_DSN" validate:"required_unless=Driver memory"`
}

// RabbitMQConfig configures product event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL   string `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	Queue string `mapstructure:"RABBITMQ_QUEUE" validate:"required_with=URL"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error"`
	Format string `mapstructure:"LOG_FORMAT" validate:"required,oneof=console json"`
}

// New returns a viper instance with every key defaulted and bound to the
// environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_SEED", false)
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "tienda.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	validate := validator.New()
	if err := validate.RegisterValidation("origin", isOrigin); err != nil {
		return nil, fmt.Errorf("failed to register origin validation: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// isOrigin accepts a bare http(s) origin, scheme and host only, in the form
// browsers send in the Origin header.
func isOrigin(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.ContainsAny(raw, ", *") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.User != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Path == "" && u.RawQuery == "" && u.Fragment == "" && !u.ForceQuery
}

// EventsEnabled reports whether product events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.URL != ""
}
