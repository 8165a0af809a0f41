// Package config reads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformstrings "fname-registry/pkg/platform/strings"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Authorization modes for transfer signers.
const (
	AuthModeAllowList = "allowlist"
	AuthModeOpen      = "open"
)

// Config is the full service configuration.
type Config struct {
	Environment string
	Service     string
	Server      Server
	Storage     string
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Signer      SignerConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	RunMigrations   bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty URL disables the transfer cache and custody lookups.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
	CustodyKey   string
}

// KafkaConfig is optional; no brokers disables transfer events.
type KafkaConfig struct {
	Brokers        []string
	TransfersTopic string
	Partitions     int32
}

type SignerConfig struct {
	PrivateKey string
	AdminKeys  string
	AuthMode   string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var errs []error
	cfg := Config{
		Environment: envOr("ENVIRONMENT", "dev"),
		Service:     envOr("DD_SERVICE", "fname-registry"),
		Server: Server{
			Addr:            envOr("FNAME_REGISTRY_ADDR", ":8080"),
			RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second, &errs),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
		},
		Storage: strings.ToLower(envOr("STORAGE_BACKEND", StoragePostgres)),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			RunMigrations:   envBool("RUN_MIGRATIONS", true, &errs),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 20, &errs),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
			CacheTTL:     envDuration("TRANSFER_CACHE_TTL", 24*time.Hour, &errs),
			CustodyKey:   envOr("CUSTODY_REDIS_KEY", "fname:custody"),
		},
		Kafka: KafkaConfig{
			Brokers:        platformstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			TransfersTopic: envOr("KAFKA_TRANSFERS_TOPIC", "fname.transfers"),
			Partitions:     int32(envInt("KAFKA_TRANSFERS_PARTITIONS", 1, &errs)),
		},
		Signer: SignerConfig{
			PrivateKey: os.Getenv("SIGNER_PRIVATE_KEY"),
			AdminKeys:  os.Getenv("ADMIN_KEYS"),
			AuthMode:   strings.ToLower(envOr("AUTH_MODE", AuthModeAllowList)),
		},
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) validate() []error {
	var errs []error
	switch c.Storage {
	case StoragePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	switch c.Signer.AuthMode {
	case AuthModeAllowList:
	case AuthModeOpen:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when AUTH_MODE=open"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeAllowList, AuthModeOpen, c.Signer.AuthMode))
	}
	if c.Signer.PrivateKey == "" {
		errs = append(errs, errors.New("SIGNER_PRIVATE_KEY is required"))
	}
	return errs
}

// IsProduction reports whether the service runs in the prod environment.
func (c Config) IsProduction() bool {
	return c.Environment == "prod"
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func envBool(key string, fallback bool, errs *[]error) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
