package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Inference InferenceConfig
	Analysis  AnalysisConfig
	Chat      ChatConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// InferenceConfig holds remote LLM service settings.
type InferenceConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	MaxRetries     int    `mapstructure:"max_retries"`
	RetryBackoffMS int    `mapstructure:"retry_backoff_ms"`
}

// Timeout returns the per-request transport timeout.
func (i *InferenceConfig) Timeout() time.Duration {
	return time.Duration(i.TimeoutSecs) * time.Second
}

// RetryBackoff returns the delay before a retried inference call.
func (i *InferenceConfig) RetryBackoff() time.Duration {
	return time.Duration(i.RetryBackoffMS) * time.Millisecond
}

// AnalysisConfig holds one-shot analysis settings.
type AnalysisConfig struct {
	ContextCap      int     `mapstructure:"context_cap"`
	DefaultLanguage string  `mapstructure:"default_language"`
	Temperature     float64 `mapstructure:"temperature"`
}

// ChatConfig holds conversational query settings.
type ChatConfig struct {
	Temperature float64 `mapstructure:"temperature"`
}

// Load reads configuration from environment variables with the FINSIGHT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "finsight")
	v.SetDefault("db.password", "finsight_secret")
	v.SetDefault("db.name", "finsight_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Inference defaults
	v.SetDefault("inference.endpoint", "https://api.mistral.ai/v1/chat/completions")
	v.SetDefault("inference.api_key", "")
	v.SetDefault("inference.model", "mistral-large-latest")
	v.SetDefault("inference.timeout_secs", 120)
	v.SetDefault("inference.max_retries", 1)
	v.SetDefault("inference.retry_backoff_ms", 500)

	// Analysis defaults
	v.SetDefault("analysis.context_cap", 15000)
	v.SetDefault("analysis.default_language", "fr")
	v.SetDefault("analysis.temperature", 0.1)

	// Chat defaults
	v.SetDefault("chat.temperature", 0.2)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "FINSIGHT_SERVER_PORT",
		"server.read_timeout":        "FINSIGHT_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "FINSIGHT_SERVER_WRITE_TIMEOUT",
		"server.environment":         "FINSIGHT_SERVER_ENVIRONMENT",
		"db.host":                    "FINSIGHT_DB_HOST",
		"db.port":                    "FINSIGHT_DB_PORT",
		"db.user":                    "FINSIGHT_DB_USER",
		"db.password":                "FINSIGHT_DB_PASSWORD",
		"db.name":                    "FINSIGHT_DB_NAME",
		"db.sslmode":                 "FINSIGHT_DB_SSLMODE",
		"db.max_open":                "FINSIGHT_DB_MAX_OPEN",
		"db.max_idle":                "FINSIGHT_DB_MAX_IDLE",
		"log.level":                  "FINSIGHT_LOG_LEVEL",
		"log.format":                 "FINSIGHT_LOG_FORMAT",
		"cors.allowed_origins":       "FINSIGHT_CORS_ALLOWED_ORIGINS",
		"inference.endpoint":         "FINSIGHT_INFERENCE_ENDPOINT",
		"inference.api_key":          "FINSIGHT_INFERENCE_API_KEY",
		"inference.model":            "FINSIGHT_INFERENCE_MODEL",
		"inference.timeout_secs":     "FINSIGHT_INFERENCE_TIMEOUT_SECS",
		"inference.max_retries":      "FINSIGHT_INFERENCE_MAX_RETRIES",
		"inference.retry_backoff_ms": "FINSIGHT_INFERENCE_RETRY_BACKOFF_MS",
		"analysis.context_cap":       "FINSIGHT_ANALYSIS_CONTEXT_CAP",
		"analysis.default_language":  "FINSIGHT_ANALYSIS_DEFAULT_LANGUAGE",
		"analysis.temperature":       "FINSIGHT_ANALYSIS_TEMPERATURE",
		"chat.temperature":           "FINSIGHT_CHAT_TEMPERATURE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FINSIGHT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FINSIGHT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Inference = InferenceConfig{
		Endpoint:       v.GetString("inference.endpoint"),
		APIKey:         v.GetString("inference.api_key"),
		Model:          v.GetString("inference.model"),
		TimeoutSecs:    v.GetInt("inference.timeout_secs"),
		MaxRetries:     v.GetInt("inference.max_retries"),
		RetryBackoffMS: v.GetInt("inference.retry_backoff_ms"),
	}

	cfg.Analysis = AnalysisConfig{
		ContextCap:      v.GetInt("analysis.context_cap"),
		DefaultLanguage: v.GetString("analysis.default_language"),
		Temperature:     v.GetFloat64("analysis.temperature"),
	}

	cfg.Chat = ChatConfig{
		Temperature: v.GetFloat64("chat.temperature"),
	}

	return cfg, nil
}
