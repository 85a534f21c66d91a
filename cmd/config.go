package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"fulfillment"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET,required"`
	JWTIssuer string `env:"JWT_ISSUER"`

	RoutePlannerURL     string        `env:"ROUTE_PLANNER_URL" envDefault:"https://routeoptimization.googleapis.com"`
	RoutePlannerProject string        `env:"ROUTE_PLANNER_PROJECT,required"`
	RoutePlannerToken   string        `env:"ROUTE_PLANNER_TOKEN"`
	RoutePlanTimeout    time.Duration `env:"ROUTE_PLAN_TIMEOUT" envDefault:"15s"`

	PaymentGatewayURL string `env:"PAYMENT_GATEWAY_URL" envDefault:"https://api.stripe.com"`
	PaymentGatewayKey string `env:"PAYMENT_GATEWAY_KEY,required"`

	DepotLatitude  float64 `env:"DEPOT_LATITUDE" envDefault:"37.3352"`
	DepotLongitude float64 `env:"DEPOT_LONGITUDE" envDefault:"-121.8811"`

	DispatchSweepSchedule string `env:"DISPATCH_SWEEP_SCHEDULE" envDefault:"*/5 * * * * *"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.RoutePlanTimeout <= 0 {
		return Config{}, fmt.Errorf("ROUTE_PLAN_TIMEOUT must be positive, got %s", cfg.RoutePlanTimeout)
	}
	return cfg, nil
}

// DSN is the key/value connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
