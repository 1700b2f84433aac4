package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poextract/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POEXTRACT_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 2, cfg.OCR.MaxConcurrent)
	assert.Equal(t, 120, cfg.Extract.WrapWidth)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoad_PlainPortVariable(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("POEXTRACT_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Port)
}

func TestLoad_PrefixedPortWinsOverPlainPort(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("POEXTRACT_SERVER_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POEXTRACT_FETCH_TIMEOUT", "5s")
	t.Setenv("POEXTRACT_OCR_LANGUAGE", "deu")
	t.Setenv("POEXTRACT_EXTRACT_WRAP_WIDTH", "80")
	t.Setenv("POEXTRACT_SERVER_ENVIRONMENT", "production")
	t.Setenv("POEXTRACT_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "deu", cfg.OCR.Language)
	assert.Equal(t, 80, cfg.Extract.WrapWidth)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
