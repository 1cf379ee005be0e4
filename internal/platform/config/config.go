package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	ReadDatabaseURL string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	StorageDriver   string
	MigrationsPath  string

	JWTSecret string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration
	// How long an in-flight Idempotency-Key is held before another request may claim it.
	IdempotencyPendingTTL time.Duration

	KafkaBrokers      []string
	KafkaFundingTopic string

	PosthogAPIKey   string
	PosthogEndpoint string
	RateLimit       string

	FundingMaxCASRetries int
	CORSAllowedOrigins   []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PGSQL_READ_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("IDEMPOTENCY_PENDING_TTL", "30s")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_FUNDING_TOPIC", "merchant_funding_events")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("FUNDING_MAX_CAS_RETRIES", 3)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		ReadDatabaseURL:   v.GetString("PGSQL_READ_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		KafkaBrokers:      splitList(v.GetString("KAFKA_BROKERS")),
		KafkaFundingTopic: v.GetString("KAFKA_FUNDING_TOPIC"),
		PosthogAPIKey:     v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:   v.GetString("POSTHOG_ENDPOINT"),
		RateLimit:         v.GetString("RATE_LIMIT"),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, funding data will not survive a restart.")
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.ReadDatabaseURL == "" {
		cfg.ReadDatabaseURL = cfg.DatabaseURL
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = insecureJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IdempotencyTTL = durationOrDefault(v, "IDEMPOTENCY_TTL", 24*time.Hour)
	cfg.IdempotencyPendingTTL = durationOrDefault(v, "IDEMPOTENCY_PENDING_TTL", 30*time.Second)
	if cfg.IdempotencyPendingTTL > cfg.IdempotencyTTL {
		log.Printf("Warning: IDEMPOTENCY_PENDING_TTL (%s) exceeds IDEMPOTENCY_TTL. Using %s.\n", cfg.IdempotencyPendingTTL, cfg.IdempotencyTTL)
		cfg.IdempotencyPendingTTL = cfg.IdempotencyTTL
	}

	cfg.FundingMaxCASRetries = v.GetInt("FUNDING_MAX_CAS_RETRIES")
	if cfg.FundingMaxCASRetries < 0 {
		log.Printf("Warning: Invalid value for FUNDING_MAX_CAS_RETRIES (%d). Defaulting to 3.\n", cfg.FundingMaxCASRetries)
		cfg.FundingMaxCASRetries = 3
	}

	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Idempotency-Key support is disabled.")
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Funding events will only be logged.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return def
	}
	return d
}
