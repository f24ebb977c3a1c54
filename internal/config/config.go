// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ryanhu021/splitr/internal/receiptparse"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/pkg/logging"
)

type Config struct {
	App struct {
		Port        int      `envconfig:"PORT" default:"8080"`
		LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Storage struct {
		DBPath      string `envconfig:"DB_PATH" default:"./data/splitr.db"`
		ArchivePath string `envconfig:"ARCHIVE_PATH" default:"./data/scans.db"`
	}

	Parser struct {
		Strategy string `envconfig:"SPLITR_PARSER_STRATEGY" default:"regex"`
	}

	Recognition struct {
		Backend string        `envconfig:"RECOGNIZER" default:"text"`
		Timeout time.Duration `envconfig:"RECOGNITION_TIMEOUT" default:"30s"`
		Enhance bool          `envconfig:"IMAGE_ENHANCE" default:"true"`

		AzureEndpoint string `envconfig:"AZURE_VISION_ENDPOINT"`
		AzureKey      string `envconfig:"AZURE_VISION_KEY"`

		GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
		GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	}
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := receiptparse.ParseStrategy(c.Parser.Strategy); err != nil {
		return fmt.Errorf("invalid SPLITR_PARSER_STRATEGY: %w", err)
	}
	switch c.Recognition.Backend {
	case "text":
	case "azure":
		if c.Recognition.AzureEndpoint == "" || c.Recognition.AzureKey == "" {
			return errors.New("RECOGNIZER=azure needs AZURE_VISION_ENDPOINT and AZURE_VISION_KEY")
		}
	case "gemini":
		if c.Recognition.GeminiAPIKey == "" {
			return errors.New("RECOGNIZER=gemini needs GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("invalid RECOGNIZER %q (want text, azure or gemini)", c.Recognition.Backend)
	}
	return nil
}

// Strategy returns the configured default parser strategy.
func (c *Config) Strategy() receiptparse.Strategy {
	strategy, _ := receiptparse.ParseStrategy(c.Parser.Strategy)
	return strategy
}

// RecognitionOptions returns the recognizer settings.
func (c *Config) RecognitionOptions() recognition.Options {
	return recognition.Options{
		Backend:       c.Recognition.Backend,
		AzureEndpoint: c.Recognition.AzureEndpoint,
		AzureKey:      c.Recognition.AzureKey,
		GeminiAPIKey:  c.Recognition.GeminiAPIKey,
		GeminiModel:   c.Recognition.GeminiModel,
		Enhance:       c.Recognition.Enhance,
	}
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	return logging.ParseLevel(c.App.LogLevel)
}
