// Package config reads service configuration from the environment. An
// optional .env file is loaded first; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TxTimeout     time.Duration
}

// Storage selects and configures the provider store.
type Storage struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// RedisConfig configures the optional read cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the audit outbox relay.
type KafkaConfig struct {
	Brokers      []string
	AuditTopic   string
	PollInterval time.Duration
}

type Config struct {
	Server  Server
	Storage Storage
	Redis   RedisConfig
	Kafka   KafkaConfig
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Server.Environment == "" || c.Server.Environment == "dev"
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from environment variables so main stays lean.
// Malformed numbers and durations fall back to their defaults and are
// reported together in the returned error.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Server: Server{
			Addr:          getString("PROVIDER_REGISTRY_ADDR", ":8080"),
			Environment:   getString("ENVIRONMENT", "dev"),
			LogLevel:      strings.ToLower(getString("LOG_LEVEL", "info")),
			JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
			JWTIssuer:     getString("JWT_ISSUER", "provider-registry"),
			JWTAudience:   getString("JWT_AUDIENCE", "provider-registry"),
			TxTimeout:     getDuration("TX_TIMEOUT", 5*time.Second, &errs),
		},
		Storage: Storage{
			Driver:      strings.ToLower(getString("STORAGE_DRIVER", DriverMemory)),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getString("SQLITE_PATH", "provider-registry.db"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
			CacheTTL:     getDuration("CACHE_TTL", time.Minute, &errs),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:   getString("AUDIT_TOPIC", "provider-registry.audit"),
			PollInterval: getDuration("OUTBOX_POLL_INTERVAL", time.Second, &errs),
		},
	}

	if cfg.Server.JWTSigningKey == "" && cfg.IsDev() {
		// Use a default for development - should be overridden in production
		cfg.Server.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	errs = append(errs, cfg.validate()...)
	return cfg, errors.Join(errs...)
}

func (c Config) validate() []error {
	var errs []error
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.Server.JWTSigningKey == "" {
		errs = append(errs, errors.New("JWT_SIGNING_KEY is required outside dev"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Storage.Driver != DriverPostgres {
		errs = append(errs, errors.New("KAFKA_BROKERS requires STORAGE_DRIVER=postgres for the audit outbox"))
	}
	return errs
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
