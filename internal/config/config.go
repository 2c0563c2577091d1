// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	DatabasePath    string
	JWTSecret       string
	TokenTTL        time.Duration
	CookieSecure    bool
	BcryptCost      int
	LogLevel        slog.Level
	LoginRate       float64 // attempts per minute per client
	LoginBurst      int
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file from envFile and then the process
// environment. Values already set in the environment take precedence over the
// file. A missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var errs []error
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "ecotrack.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        getDurationEnv("TOKEN_TTL", 24*time.Hour, &errs),
		CookieSecure:    os.Getenv("COOKIE_SECURE") != "false", // secure unless explicitly disabled for local development
		BcryptCost:      getIntEnv("BCRYPT_COST", 12, &errs),
		LoginRate:       float64(getIntEnv("LOGIN_RATE_PER_MINUTE", 10, &errs)),
		LoginBurst:      getIntEnv("LOGIN_BURST", 5, &errs),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second, &errs),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.LogLevel = level

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultValue
	}
	return n
}

func getDurationEnv(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultValue
	}
	return d
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
