package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL    string `env:"DATABASE_URL,notEmpty"`

	Timezone string `env:"RESTAURANT_TIMEZONE" envDefault:"UTC"`

	AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@gmail.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin"`
	JWTSecret     string        `env:"JWT_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	APIBaseURL  string   `env:"API_BASE_URL"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	CompletionSchedule string        `env:"COMPLETION_SCHEDULE"`
	CompletionGrace    time.Duration `env:"COMPLETION_GRACE" envDefault:"3h"`

	SendGridAPIKey    string `env:"SENDGRID_API_KEY"`
	SendGridFromEmail string `env:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `env:"SENDGRID_FROM_NAME" envDefault:"Reservas"`
	StaffEmail        string `env:"STAFF_NOTIFY_EMAIL"`

	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `env:"TWILIO_FROM_NUMBER"`
	StaffPhone       string `env:"STAFF_NOTIFY_PHONE"`

	EnableTracing bool `env:"ENABLE_TRACING" envDefault:"false"`

	location *time.Location
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}
	return Parse()
}

// Parse builds the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid RESTAURANT_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		log.Println("JWT_SECRET not set, sessions will not survive a restart")
		cfg.JWTSecret = secret
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://127.0.0.1:" + cfg.Port
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}

// Location is the restaurant time zone used for dates sent without an offset.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
