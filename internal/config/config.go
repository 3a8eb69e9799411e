package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	S3       S3Config
	Cloud    CloudConfig
	Quote    QuoteConfig
	Template TemplateConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// S3Config holds object storage settings for uploaded PDFs.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// CloudConfig holds settings for the external structured-extraction
// service. URL and Enabled are pass-through inputs consumed by the cloud
// extraction adapter.
type CloudConfig struct {
	URL         string `mapstructure:"url"`
	Enabled     bool   `mapstructure:"enabled"`
	Container   string `mapstructure:"container"`
	PromptPath  string `mapstructure:"prompt_path"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// QuoteConfig holds settings for the USD-BRL quote lookup.
type QuoteConfig struct {
	URL         string  `mapstructure:"url"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
	DefaultRate float64 `mapstructure:"default_rate"`
}

// TemplateConfig holds paths to the workbook templates. Templates are
// read-only assets reloaded fresh per render.
type TemplateConfig struct {
	CoverPath  string `mapstructure:"cover_path"`
	ResultPath string `mapstructure:"result_path"`
}

// Load reads configuration from environment variables with the LICITACAO_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LICITACAO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "licitacao-pdfs")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Cloud extraction defaults
	v.SetDefault("cloud.url", "")
	v.SetDefault("cloud.enabled", true)
	v.SetDefault("cloud.container", "editals")
	v.SetDefault("cloud.prompt_path", "./prompts")
	v.SetDefault("cloud.timeout_secs", 120)

	// Quote defaults
	v.SetDefault("quote.url", "https://economia.awesomeapi.com.br/last/USD-BRL")
	v.SetDefault("quote.timeout_secs", 15)
	v.SetDefault("quote.default_rate", 5.50)

	// Template defaults
	v.SetDefault("template.cover_path", "templates/capa.xlsx")
	v.SetDefault("template.result_path", "templates/resultado.xlsx")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "LICITACAO_SERVER_PORT",
		"server.read_timeout":  "LICITACAO_SERVER_READ_TIMEOUT",
		"server.write_timeout": "LICITACAO_SERVER_WRITE_TIMEOUT",
		"server.environment":   "LICITACAO_SERVER_ENVIRONMENT",
		"log.level":            "LICITACAO_LOG_LEVEL",
		"log.format":           "LICITACAO_LOG_FORMAT",
		"s3.region":            "LICITACAO_S3_REGION",
		"s3.bucket":            "LICITACAO_S3_BUCKET",
		"s3.endpoint":          "LICITACAO_S3_ENDPOINT",
		"s3.access_key":        "LICITACAO_S3_ACCESS_KEY",
		"s3.secret_key":        "LICITACAO_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "LICITACAO_S3_MAX_FILE_SIZE_MB",
		"cloud.url":            "LICITACAO_CLOUD_URL",
		"cloud.enabled":        "LICITACAO_CLOUD_ENABLED",
		"cloud.container":      "LICITACAO_CLOUD_CONTAINER",
		"cloud.prompt_path":    "LICITACAO_CLOUD_PROMPT_PATH",
		"cloud.timeout_secs":   "LICITACAO_CLOUD_TIMEOUT_SECS",
		"quote.url":            "LICITACAO_QUOTE_URL",
		"quote.timeout_secs":   "LICITACAO_QUOTE_TIMEOUT_SECS",
		"quote.default_rate":   "LICITACAO_QUOTE_DEFAULT_RATE",
		"template.cover_path":  "LICITACAO_TEMPLATE_COVER_PATH",
		"template.result_path": "LICITACAO_TEMPLATE_RESULT_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// LICITACAO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LICITACAO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Cloud = CloudConfig{
		URL:         v.GetString("cloud.url"),
		Enabled:     v.GetBool("cloud.enabled"),
		Container:   v.GetString("cloud.container"),
		PromptPath:  v.GetString("cloud.prompt_path"),
		TimeoutSecs: v.GetInt("cloud.timeout_secs"),
	}
	cfg.Quote = QuoteConfig{
		URL:         v.GetString("quote.url"),
		TimeoutSecs: v.GetInt("quote.timeout_secs"),
		DefaultRate: v.GetFloat64("quote.default_rate"),
	}
	cfg.Template = TemplateConfig{
		CoverPath:  v.GetString("template.cover_path"),
		ResultPath: v.GetString("template.result_path"),
	}

	return cfg, nil
}
