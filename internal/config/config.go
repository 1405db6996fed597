package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service. It is loaded
// once at startup and read-only afterwards.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Packing      PackingConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	SeedOnStartup         bool
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

// AuthConfig defines the token signing parameters: issuer name, token
// lifetime and the HMAC secret. The secret must never be logged.
type AuthConfig struct {
	Issuer          string
	SecretKey       string
	TokenTTLMinutes int
	BcryptCost      int
}

// PackingConfig points at the external packing-list API.
type PackingConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	CacheTTLMinutes int
}

// NotificationConfig holds the optional event webhook endpoint.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults
// where possible. When DEPLOYED is unset, a local .env file supplies the
// environment first.
func Load() (*Config, error) {
	if os.Getenv("DEPLOYED") == "" {
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "trip-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			SeedOnStartup:         getEnvAsBool("APP_SEED_ON_STARTUP", false),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
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
		Auth: AuthConfig{
			Issuer:          getEnv("ISSUER", "trip-service"),
			SecretKey:       getEnv("SECRET_KEY", ""),
			TokenTTLMinutes: getEnvAsInt("TOKEN_EXPIRE_TIME", 30),
			BcryptCost:      getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Packing: PackingConfig{
			BaseURL:         getEnv("PACKING_API_BASE_URL", "https://packingapi.cphbusinessapps.dk"),
			TimeoutSeconds:  getEnvAsInt("PACKING_API_TIMEOUT_SECONDS", 10),
			CacheTTLMinutes: getEnvAsInt("PACKING_CACHE_TTL_MINUTES", 60),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
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

// TokenTTL returns the configured token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// CacheTTL returns the packing cache lifetime.
func (p PackingConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// Timeout returns the packing client timeout.
func (p PackingConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
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
