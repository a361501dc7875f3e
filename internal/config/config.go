// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBPath string

	// Assets
	TemplateDir string
	StaticDir   string
	ChartPath   string

	// Cookies
	SecureCookie bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DBPath:      getEnv("DB_PATH", "finhub.db"),
		TemplateDir: getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:   getEnv("STATIC_DIR", "web/static"),
		ChartPath:   getEnv("CHART_PATH", "web/static/chart.png"),
	}

	secure, err := strconv.ParseBool(getEnv("SECURE_COOKIE", "false"))
	if err != nil {
		log.Printf("Warning: invalid SECURE_COOKIE value, defaulting to false")
		secure = false
	}
	cfg.SecureCookie = secure

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
