// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Addr            string
	FrontendURL     string
	SessionSecret   string
	SessionTTL      time.Duration
	SecureCookie    bool
	DatabaseURL     string // empty keeps sessions in memory
	RateLimitPerMin int
	TrustedProxies  int
	SweepInterval   time.Duration
	LogLevel        string
}

const devSessionSecret = "dev-secret-change-in-production-32bytes"

// Load reads .env files (missing files are ignored) and then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := &Config{
		Addr:          orDefault(getenv("ADDR"), ":8080"),
		FrontendURL:   orDefault(getenv("FRONTEND_URL"), "http://localhost:4321"),
		SessionSecret: orDefault(getenv("SESSION_SECRET"), devSessionSecret),
		SecureCookie:  getenv("SECURE_COOKIE") == "true",
		DatabaseURL:   getenv("DATABASE_URL"),
		LogLevel:      getenv("LOG_LEVEL"),
	}

	var err error
	if c.SessionTTL, err = durationEnv(getenv, "SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if c.SweepInterval, err = durationEnv(getenv, "SESSION_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if c.RateLimitPerMin, err = intEnv(getenv, "RATE_LIMIT_PER_MIN", 120); err != nil {
		return nil, err
	}
	if c.TrustedProxies, err = intEnv(getenv, "TRUSTED_PROXIES", 0); err != nil {
		return nil, err
	}
	return c, nil
}

// UsesDevSecret reports whether the built-in development secret is in use.
func (c *Config) UsesDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func intEnv(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
