package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"finadvisor/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	Yahoo         YahooConfig
	Firecrawl     FirecrawlConfig
	Advisor       AdvisorConfig
	Redis         RedisConfig
	Postgres      PostgresConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"finadvisor"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type AIConfig struct {
	GeminiKey string `envconfig:"GOOGLE_API_KEY"`
	Provider  string `envconfig:"AI_PROVIDER" default:"google"`
	Model     string `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
}

type YahooConfig struct {
	BaseURL        string        `envconfig:"YAHOO_BASE_URL" default:"https://query2.finance.yahoo.com"`
	Timeout        time.Duration `envconfig:"YAHOO_TIMEOUT" default:"30s"`
	RequestsPerMin int           `envconfig:"YAHOO_REQUESTS_PER_MIN" default:"60"`
}

type FirecrawlConfig struct {
	APIKey         string        `envconfig:"FIRECRAWL_API_KEY"`
	BaseURL        string        `envconfig:"FIRECRAWL_BASE_URL" default:"https://api.firecrawl.dev"`
	Timeout        time.Duration `envconfig:"FIRECRAWL_TIMEOUT" default:"30s"`
	SearchLimit    int           `envconfig:"FIRECRAWL_SEARCH_LIMIT" default:"5"`
	RequestsPerMin int           `envconfig:"FIRECRAWL_REQUESTS_PER_MIN" default:"30"`
}

type AdvisorConfig struct {
	ReportDir        string        `envconfig:"ADVISOR_REPORT_DIR" default:"./reports"`
	ExecutionTimeout time.Duration `envconfig:"ADVISOR_EXECUTION_TIMEOUT" default:"5m"`
	SessionTTL       time.Duration `envconfig:"ADVISOR_SESSION_TTL" default:"24h"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether Redis session persistence is configured.
// Without it the runner falls back to in-memory sessions.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	Database string `envconfig:"POSTGRES_DB"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Enabled reports whether the report archive is configured.
func (c PostgresConfig) Enabled() bool {
	return c.Host != "" && c.Database != ""
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
