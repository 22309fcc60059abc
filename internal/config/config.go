package config

import (
	"os"
	"strconv"
	"strings"

	"skinrisk/internal/errors"
)

// Model sources
const (
	ModelSourceFile     = "file"
	ModelSourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	Database DatabaseConfig
	Batch    BatchConfig
	Ops      OpsConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	StrictInput bool
}

// ModelConfig says where the classifier is loaded from
type ModelConfig struct {
	Source string
	Path   string
	Name   string
}

// DatabaseConfig holds the model registry connection
type DatabaseConfig struct {
	URL string
}

// BatchConfig holds dataset scoring settings
type BatchConfig struct {
	Concurrency int
}

// OpsConfig holds the operations server settings (metrics, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Model:    *loadModelConfig(),
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Batch:    BatchConfig{Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 8)},
		Ops:      *loadOpsConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     getEnvOrDefault("GIN_MODE", "release"),
		StrictInput: getEnvBoolOrDefault("STRICT_INPUT", false),
	}
}

func loadModelConfig() *ModelConfig {
	return &ModelConfig{
		Source: strings.ToLower(getEnvOrDefault("MODEL_SOURCE", ModelSourceFile)),
		Path:   getEnvOrDefault("MODEL_PATH", "./models/skin_cancer_model.json"),
		Name:   getEnvOrDefault("MODEL_NAME", "skin_cancer"),
	}
}

func loadOpsConfig() *OpsConfig {
	return &OpsConfig{
		Port:    getEnvOrDefault("OPS_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
	}
}

func validateConfig(config *Config) error {
	switch config.Model.Source {
	case ModelSourceFile:
		if config.Model.Path == "" {
			return errors.ConfigInvalid("MODEL_PATH is required when MODEL_SOURCE=file")
		}
	case ModelSourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when MODEL_SOURCE=postgres")
		}
		if config.Model.Name == "" {
			return errors.ConfigInvalid("MODEL_NAME is required when MODEL_SOURCE=postgres")
		}
	default:
		return errors.ConfigInvalid("MODEL_SOURCE must be file or postgres, got " + config.Model.Source)
	}
	if config.Batch.Concurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
