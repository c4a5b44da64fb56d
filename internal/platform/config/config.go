package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultMaxUploadBytes = 10 << 20

// ErrMissingJWTSecret is returned when auth is enabled without a signing secret.
var ErrMissingJWTSecret = errors.New("AUTH_ENABLED is set but JWT_SECRET is empty")

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// AuthEnabled turns on bearer-token checks for the API routes.
	AuthEnabled bool
	JWTSecret   string

	CORSAllowedOrigins []string
	UploadRateLimit    string // ulule/limiter formatted rate, e.g. "30-M"
	MaxUploadBytes     int64

	// AMQPURL empty disables event publishing.
	AMQPURL        string
	EventsExchange string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	v.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "collections_events")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		AuthEnabled:        v.GetBool("AUTH_ENABLED"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		UploadRateLimit:    v.GetString("UPLOAD_RATE_LIMIT"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		AMQPURL:            v.GetString("AMQP_URL"),
		EventsExchange:     v.GetString("EVENTS_EXCHANGE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.MaxUploadBytes <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_BYTES (%d). Defaulting to %d.\n", cfg.MaxUploadBytes, defaultMaxUploadBytes)
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.AMQPURL == "" {
		log.Println("AMQP_URL not set. Import events will not be published.")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
