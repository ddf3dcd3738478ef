package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string        `env:"APP_PORT,default=8080"`
	AppEnv         string        `env:"APP_ENV,default=development"`
	DBDriver       string        `env:"DB_DRIVER,default=sqlite"`
	DBURL          string        `env:"DB_URL,default=spice.db"`
	JWTSecret      string        `env:"JWT_SECRET"`
	AuthEnforced   bool          `env:"AUTH_ENFORCED,default=false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=15s"`
	CORSOrigins    string        `env:"CORS_ORIGINS,default=*"`
	AMQPURL        string        `env:"AMQP_URL"`
	AMQPExchange   string        `env:"AMQP_EXCHANGE,default=spice.orders"`
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres", "pgx":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use sqlite, postgres or pgx)", cfg.DBDriver)
	}

	if cfg.AuthEnforced && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_ENFORCED is set")
	}

	return cfg, nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
