package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Application stores selectable through APPLICATION_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

type AuthConfig struct {
	Enabled       bool
	JWTSecret     string
	PublicKeyFile string
	Issuer        string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type TelemetryConfig struct {
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
	OTLPInsecure bool
	SampleRatio  float64
}

// IdentityConfig points the KYC check at the CRM. An empty BaseURL uses the
// seeded customer book.
type IdentityConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	GRPCReflection bool
	Store          string
	DB             DatabaseConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	Auth           AuthConfig
	TLS            TLSConfig
	Telemetry      TelemetryConfig
	Identity       IdentityConfig
	ServiceName    string
}

// Validate reports every missing or inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when APPLICATION_STORE=redis"))
		}
		if c.Redis.SessionTTL <= 0 {
			errs = append(errs, errors.New("REDIS_SESSION_TTL must be positive"))
		}
	case StorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required when APPLICATION_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("APPLICATION_STORE %q is not one of memory, redis, postgres", c.Store))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED=true"))
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" && c.Auth.PublicKeyFile == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY_FILE is required when AUTH_ENABLED=true"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.GRPCPort))
	}
	return errors.Join(errs...)
}

func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9091),
		HTTPPort:       getEnvInt("HTTP_PORT", 8091),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		Store:          strings.ToLower(getEnv("APPLICATION_STORE", StoreMemory)),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "bib"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "bib_origination"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			SessionTTL: getEnvDuration("REDIS_SESSION_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Topic:   getEnv("KAFKA_TOPIC", "origination-events"),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
		},
		Auth: AuthConfig{
			Enabled:       getEnvBool("AUTH_ENABLED", false),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", "bib-identity"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", "json"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
		Identity: IdentityConfig{
			BaseURL:    getEnv("CRM_BASE_URL", ""),
			Timeout:    getEnvDuration("CRM_TIMEOUT", 5*time.Second),
			MaxRetries: getEnvInt("CRM_MAX_RETRIES", 3),
		},
		ServiceName: "origination-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
