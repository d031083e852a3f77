package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetEnvOrDefault returns the environment variable value or a default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntOrDefault returns an integer environment variable or a default
func GetEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetEnvDurationOrDefault returns a duration environment variable or a default
func GetEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// DataDir returns the meetflow state directory, created on demand.
// Override with MEETFLOW_DATA_DIR; defaults to ~/.meetflow.
func DataDir() (string, error) {
	if dir := os.Getenv("MEETFLOW_DATA_DIR"); dir != "" {
		return dir, os.MkdirAll(dir, 0o755)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".meetflow")
	return dir, os.MkdirAll(dir, 0o755)
}

// ModelsDir returns the directory holding whisper weights.
// Override with MEETFLOW_MODELS_DIR; defaults to <data dir>/models.
func ModelsDir() (string, error) {
	if dir := os.Getenv("MEETFLOW_MODELS_DIR"); dir != "" {
		return dir, os.MkdirAll(dir, 0o755)
	}
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(data, "models")
	return dir, os.MkdirAll(dir, 0o755)
}

// SQLitePath returns the local database file path.
func SQLitePath() (string, error) {
	if p := os.Getenv("MEETFLOW_DB_PATH"); p != "" {
		return p, nil
	}
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "meetflow.db"), nil
}
