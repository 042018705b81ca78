package config

import (
	"fmt"

	pkgconfig "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Checkout session TTL in minutes. Carts never expire; only the
	// checkout session does.
	SessionTTLMinutes int `env:"CHECKOUT_SESSION_TTL_MINUTES" envDefault:"60"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Demo auth
	JWTSecret        string `env:"JWT_SECRET" envDefault:"storefront-demo-secret"`
	TokenExpiryHours int    `env:"TOKEN_EXPIRY_HOURS" envDefault:"24"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants beyond what the env tags express.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("invalid checkout session TTL: %d", c.SessionTTLMinutes)
	}
	if c.TokenExpiryHours < 1 {
		return fmt.Errorf("invalid token expiry: %d", c.TokenExpiryHours)
	}
	return nil
}
