package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Valuation ValuationConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ValuationConfig holds the valuation engine configuration
type ValuationConfig struct {
	BaseCurrency string
	LotPolicy    string
	OversellMode string
	SellFeeBps   string
	SellFeeFlat  string
}

// SchedulerConfig holds the nightly recompute schedule
type SchedulerConfig struct {
	RecomputeCron string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investment_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Valuation: ValuationConfig{
			BaseCurrency: getEnv("BASE_CURRENCY", "USD"),
			LotPolicy:    getEnv("LOT_POLICY", "FIFO"),
			OversellMode: getEnv("OVERSELL_MODE", "STRICT"),
			SellFeeBps:   getEnv("SELL_FEE_BPS", "0"),
			SellFeeFlat:  getEnv("SELL_FEE_FLAT", "0"),
		},
		Scheduler: SchedulerConfig{
			RecomputeCron: getEnv("RECOMPUTE_CRON", "15 2 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
