package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanhu021/splitr/internal/receiptparse"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.Equal(t, "./data/splitr.db", cfg.Storage.DBPath)
	assert.Equal(t, receiptparse.StrategyRegex, cfg.Strategy())
	assert.Equal(t, "text", cfg.Recognition.Backend)
	assert.Equal(t, 30*time.Second, cfg.Recognition.Timeout)
	assert.True(t, cfg.Recognition.Enhance)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SPLITR_PARSER_STRATEGY", "cursor")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOGNIZER", "azure")
	t.Setenv("AZURE_VISION_ENDPOINT", "https://example.cognitiveservices.azure.com")
	t.Setenv("AZURE_VISION_KEY", "key")
	t.Setenv("RECOGNITION_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://splitr.app")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, receiptparse.StrategyCursor, cfg.Strategy())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, 5*time.Second, cfg.Recognition.Timeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://splitr.app"}, cfg.App.CORSOrigins)

	opts := cfg.RecognitionOptions()
	assert.Equal(t, "azure", opts.Backend)
	assert.Equal(t, "key", opts.AzureKey)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown strategy", env: map[string]string{"SPLITR_PARSER_STRATEGY": "neural"}},
		{name: "unknown recognizer", env: map[string]string{"RECOGNIZER": "tesseract"}},
		{name: "azure without key", env: map[string]string{"RECOGNIZER": "azure"}},
		{name: "gemini without key", env: map[string]string{"RECOGNIZER": "gemini"}},
		{name: "bad port", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PATH=/tmp/from-dotenv.db\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("DB_PATH", "")
	os.Unsetenv("DB_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Storage.DBPath)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.NoError(t, err)
}
