package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration resolved from the environment.
type Config struct {
	Port            string
	Store           string // "memory" or "bigquery"
	BigQueryProject string
	BigQueryDataset string
	SeedDemoData    bool
}

// Load reads an optional .env file, then resolves configuration from
// environment variables with defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Store:           getEnvOrDefault("STORE", "memory"),
		BigQueryProject: os.Getenv("BIGQUERY_PROJECT"),
		BigQueryDataset: getEnvOrDefault("BIGQUERY_DATASET", "finance"),
		SeedDemoData:    os.Getenv("SEED_DEMO_DATA") == "true",
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
