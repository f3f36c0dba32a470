package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`

	Codes CodesConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Seed  SeedConfig
}

// CodesConfig controls the verification-code registry.
type CodesConfig struct {
	// Backend selects the registry implementation: "memory" (single instance)
	// or "redis" (shared across instances).
	Backend       string        `env:"CODES_BACKEND,        default=memory"`
	TTL           time.Duration `env:"CODES_TTL,            default=10m"`
	SweepInterval time.Duration `env:"CODES_SWEEP_INTERVAL, default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=federation"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@federation.example"`
}

// SeedConfig provisions the initial administrator at startup when both fields
// are set and no account exists for the email.
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminName     string `env:"SEED_ADMIN_NAME, default=Administrator"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
// JWT_SECRET has no usable default: an empty signing key would still produce
// verifiable tokens, so its absence fails startup.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.JWTSecret == "" {
		panic("config: JWT_SECRET must be set")
	}
	return &cfg
}
