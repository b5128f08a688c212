package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr       string `envconfig:"HTTP_ADDR"`
	Port           string `envconfig:"PORT"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH"`

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DirectURL   string `envconfig:"DIRECT_URL"`

	DB DBConfig `envconfig:"DB"`

	Supabase SupabaseConfig `envconfig:"SUPABASE"`

	// AllowedOrigins is the comma-separated list of frontend origins allowed to call the API.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// StatusPollInterval drives the backend status monitor behind GET /v1/status.
	StatusPollInterval time.Duration `envconfig:"STATUS_POLL_INTERVAL" default:"60s"`

	// AvailabilityInclusiveEnd restores the legacy "in use" check that treats the booking end
	// instant as still occupied.
	AvailabilityInclusiveEnd bool `envconfig:"AVAILABILITY_INCLUSIVE_END" default:"false"`

	// RabbitURL is optional; booking events are dropped when it is empty.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	// OTelEndpoint is optional; tracing stays a no-op when it is empty.
	OTelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Nested fields carry no envconfig tag on purpose: a tag would make envconfig fall back to the
// bare name (DB_USER -> USER) when the prefixed variable is unset.
type DBConfig struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	Name     string `default:"campusbooking"`
	User     string `default:"campusbooking"`
	Password string `default:"campusbooking"`
	SSLMode  string `default:"disable"`
}

type SupabaseConfig struct {
	// URL is the project URL, e.g. https://abcd.supabase.co. Used for the auth health probe.
	URL     string
	AnonKey string `split_words:"true"`

	// JWTSecret verifies access tokens issued by Supabase Auth (HS256).
	JWTSecret   string `split_words:"true"`
	JWTAudience string `split_words:"true" default:"authenticated"`
}

func Load() (Config, error) {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	if cfg.HTTPAddr == "" {
		if cfg.Port != "" {
			cfg.HTTPAddr = ":" + cfg.Port
		} else {
			cfg.HTTPAddr = ":8081"
		}
	}

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}
