package config

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Database is the connection part of Config. Tools that only touch the
// schema parse it alone.
type Database struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"attendease"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	Database
	// AutoMigrate lets the server create its own schema; turn it off when
	// cmd/migrate owns the schema.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// RabbitURL is optional; without it domain events are not published and
	// gateway confirmations are not consumed.
	RabbitURL string `env:"RABBITMQ_URL"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	Timezone              string        `env:"TIMEZONE" envDefault:"Local"`
	CancellationNotice    time.Duration `env:"CANCELLATION_NOTICE" envDefault:"30m"`
	PaymentDelay          time.Duration `env:"PAYMENT_DELAY" envDefault:"1500ms"`
	RefundOnSessionDelete bool          `env:"REFUND_ON_SESSION_DELETE" envDefault:"false"`

	SeedFile string `env:"SEED_FILE"`
}

// Load reads .env when present and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabase reads .env when present and parses only the database settings.
func LoadDatabase() (*Database, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	var db Database
	if err := env.Parse(&db); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &db, nil
}

func (c *Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// DatabaseURL is the URL form of DSN, used by the migration runner.
func (c *Database) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Location is the time zone session dates and times are written in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
