package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "licitacao-pdfs", cfg.S3.Bucket)
	assert.Equal(t, int64(50), cfg.S3.MaxFileSizeMB)

	assert.True(t, cfg.Cloud.Enabled)
	assert.Equal(t, "editals", cfg.Cloud.Container)
	assert.Equal(t, "./prompts", cfg.Cloud.PromptPath)
	assert.Equal(t, 120, cfg.Cloud.TimeoutSecs)

	assert.Equal(t, "https://economia.awesomeapi.com.br/last/USD-BRL", cfg.Quote.URL)
	assert.InDelta(t, 5.50, cfg.Quote.DefaultRate, 0.0001)

	assert.Equal(t, "templates/capa.xlsx", cfg.Template.CoverPath)
	assert.Equal(t, "templates/resultado.xlsx", cfg.Template.ResultPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LICITACAO_SERVER_PORT", ":9090")
	t.Setenv("LICITACAO_S3_BUCKET", "custom-bucket")
	t.Setenv("LICITACAO_CLOUD_ENABLED", "false")
	t.Setenv("LICITACAO_QUOTE_DEFAULT_RATE", "4.85")
	t.Setenv("LICITACAO_TEMPLATE_COVER_PATH", "/opt/templates/capa.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "custom-bucket", cfg.S3.Bucket)
	assert.False(t, cfg.Cloud.Enabled)
	assert.InDelta(t, 4.85, cfg.Quote.DefaultRate, 0.0001)
	assert.Equal(t, "/opt/templates/capa.xlsx", cfg.Template.CoverPath)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LICITACAO_SERVER_PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
