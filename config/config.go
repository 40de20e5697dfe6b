package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on distroless images

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=marketpulse
//	REDIS_ADDR=localhost:6379
//	ALPHAVANTAGE_API_KEY=demo
//	REFRESH_CRON=0 0 6 * * *
//	UPLOAD_DIR=uploads
type Config struct {
	Server      ServerConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Providers   ProvidersConfig
	Refresh     RefreshConfig
	Seed        SeedConfig
	Screenshots ScreenshotsConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	RateLimitPerMinute int
}

// PostgresConfig defines connection details for PostgreSQL. URL is the
// computed DSN handed to database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// RedisConfig configures the snapshot cache. Enabled=false skips the
// connection entirely.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ProvidersConfig holds upstream endpoints and credentials.
type ProvidersConfig struct {
	AlphaVantageURL string
	AlphaVantageKey string
	CoinGeckoURL    string
	CoinGeckoKey    string
	Timeout         time.Duration
}

// RefreshConfig drives the daily cache warm-up.
type RefreshConfig struct {
	Cron     string
	Parallel int
	Timezone string
}

// SeedConfig controls watchlist seeding. An empty File means the built-in sample.
type SeedConfig struct {
	OnStart bool
	File    string
}

// ScreenshotsConfig covers uploads and the optional OCR and AI analysis.
// An empty TesseractPath or AnalyzerKey leaves that step disabled.
type ScreenshotsConfig struct {
	UploadDir       string
	MaxUploadBytes  int64
	TesseractPath   string
	AnalyzerURL     string
	AnalyzerKey     string
	AnalyzerModel   string
	AnalyzerTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// LoadConfig reads configuration with the usual precedence:
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The result is not validated; call Validate before use.
func LoadConfig() Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional

	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("CACHE_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Providers: ProvidersConfig{
			AlphaVantageURL: v.GetString("ALPHAVANTAGE_BASE_URL"),
			AlphaVantageKey: v.GetString("ALPHAVANTAGE_API_KEY"),
			CoinGeckoURL:    v.GetString("COINGECKO_BASE_URL"),
			CoinGeckoKey:    v.GetString("COINGECKO_API_KEY"),
			Timeout:         v.GetDuration("PROVIDER_TIMEOUT"),
		},
		Refresh: RefreshConfig{
			Cron:     v.GetString("REFRESH_CRON"),
			Parallel: v.GetInt("REFRESH_PARALLEL"),
			Timezone: v.GetString("TIMEZONE"),
		},
		Seed: SeedConfig{
			OnStart: v.GetBool("SEED_ON_START"),
			File:    v.GetString("SEED_FILE"),
		},
		Screenshots: ScreenshotsConfig{
			UploadDir:       v.GetString("UPLOAD_DIR"),
			MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
			TesseractPath:   v.GetString("TESSERACT_PATH"),
			AnalyzerURL:     v.GetString("ANTHROPIC_BASE_URL"),
			AnalyzerKey:     v.GetString("ANTHROPIC_API_KEY"),
			AnalyzerModel:   v.GetString("ANTHROPIC_MODEL"),
			AnalyzerTimeout: v.GetDuration("ANALYZER_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}
	cfg.Postgres.URL = cfg.Postgres.DSN()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "marketpulse")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co")
	v.SetDefault("ALPHAVANTAGE_API_KEY", "demo")
	v.SetDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	v.SetDefault("COINGECKO_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")

	v.SetDefault("REFRESH_CRON", "0 0 6 * * *")
	v.SetDefault("REFRESH_PARALLEL", 4)
	v.SetDefault("TIMEZONE", "America/New_York")

	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("SEED_FILE", "")

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("TESSERACT_PATH", "")
	v.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022")
	v.SetDefault("ANALYZER_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// DSN builds the postgres:// connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if c.Providers.AlphaVantageURL == "" {
		missing = append(missing, "ALPHAVANTAGE_BASE_URL")
	}
	if c.Providers.CoinGeckoURL == "" {
		missing = append(missing, "COINGECKO_BASE_URL")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	if c.Providers.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.Providers.Timeout))
	}
	if c.Screenshots.UploadDir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR must not be empty"))
	}
	if c.Screenshots.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Screenshots.MaxUploadBytes))
	}
	if c.Refresh.Parallel < 1 {
		errs = append(errs, fmt.Errorf("REFRESH_PARALLEL must be at least 1, got %d", c.Refresh.Parallel))
	}
	if _, err := time.LoadLocation(c.Refresh.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Refresh.Timezone, err))
	}
	return errors.Join(errs...)
}
