package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session persistence backends.
const (
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
	SessionBackendMemory   = "memory"
)

// Config aggregates runtime configuration for the dashboard.
type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Tracing  TracingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// APIConfig points at the external internship REST API.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SessionConfig controls the credential store.
type SessionConfig struct {
	Backend          string
	StorageKey       string
	CookieName       string
	CookieSecure     bool
	SealKey          []byte
	HydrateWaitMS    int
	IdleTTLMinutes   int
	SweepIntervalSec int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TracingConfig configures the OTLP exporter. An empty endpoint disables tracing.
type TracingConfig struct {
	Endpoint string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	baseURL, err := parseBaseURL(os.Getenv("API_BASE_URL"))
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendRedis))
	switch backend {
	case SessionBackendRedis, SessionBackendPostgres, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q", backend)
	}

	var sealKey []byte
	if raw := os.Getenv("SESSION_SEAL_KEY"); raw != "" {
		sealKey, err = hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_SEAL_KEY: %w", err)
		}
		if len(sealKey) != 32 {
			return nil, fmt.Errorf("invalid SESSION_SEAL_KEY: want 32 bytes, got %d", len(sealKey))
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "intern-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		API: APIConfig{
			BaseURL:        baseURL,
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			Backend:          backend,
			StorageKey:       getEnv("SESSION_STORAGE_KEY", "intern-dashboard.token"),
			CookieName:       getEnv("SESSION_COOKIE_NAME", "intern_dash_sid"),
			CookieSecure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
			SealKey:          sealKey,
			HydrateWaitMS:    getEnvAsInt("SESSION_HYDRATE_WAIT_MS", 250),
			IdleTTLMinutes:   getEnvAsInt("SESSION_IDLE_TTL_MINUTES", 60),
			SweepIntervalSec: getEnvAsInt("SESSION_SWEEP_INTERVAL_SECONDS", 60),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	if cfg.Session.Backend == SessionBackendPostgres && cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("SESSION_BACKEND=postgres requires POSTGRES_DSN")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call timeout for the external API.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// HydrateWait bounds how long a page waits for a fresh store to finish hydrating.
func (s SessionConfig) HydrateWait() time.Duration {
	if s.HydrateWaitMS < 0 {
		return 0
	}
	return time.Duration(s.HydrateWaitMS) * time.Millisecond
}

// IdleTTL is how long an untouched session store stays in memory.
func (s SessionConfig) IdleTTL() time.Duration {
	if s.IdleTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.IdleTTLMinutes) * time.Minute
}

// SweepInterval is the period of the idle-session sweeper.
func (s SessionConfig) SweepInterval() time.Duration {
	if s.SweepIntervalSec <= 0 {
		return time.Minute
	}
	return time.Duration(s.SweepIntervalSec) * time.Second
}

func parseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("invalid API_BASE_URL %q: absolute http(s) URL required", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
