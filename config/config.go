// Package config loads the single document of process configuration named
// in §6: http host/port, database location and pool size, and the JWT
// signing secret.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the process's whole configuration document.
type Config struct {
	HTTPHost string
	HTTPPort string

	DBURL      string
	DBPoolSize int

	JWTSecret string
}

// Addr returns the address http.Server should listen on.
func (c Config) Addr() string { return c.HTTPHost + ":" + c.HTTPPort }

const defaultPoolSize = 4

// LoadFromEnv reads the configuration document from the process
// environment. ARBITER_DB_URL and ARBITER_JWT_SECRET are required; every
// other key has a development-friendly default.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		HTTPHost:   envOr("ARBITER_HTTP_HOST", "0.0.0.0"),
		HTTPPort:   envOr("ARBITER_HTTP_PORT", "8080"),
		DBURL:      os.Getenv("ARBITER_DB_URL"),
		DBPoolSize: defaultPoolSize,
		JWTSecret:  os.Getenv("ARBITER_JWT_SECRET"),
	}

	if v := strings.TrimSpace(os.Getenv("ARBITER_DB_POOL_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DBPoolSize = n
		} else {
			fmt.Fprintf(os.Stderr, "config: invalid ARBITER_DB_POOL_SIZE=%q, using default %d\n", v, defaultPoolSize)
		}
	}

	var missing []string
	if cfg.DBURL == "" {
		missing = append(missing, "ARBITER_DB_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "ARBITER_JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required env: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
