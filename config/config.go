package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/observe"
	"github.com/jonwraymond/coursecms/secret"
	"github.com/jonwraymond/coursecms/store"
)

var (
	ErrMissingDSN      = errors.New("config: DB_DSN is required")
	ErrMissingAuth     = errors.New("config: JWT_SECRET or API_KEYS is required in production")
	ErrInvalidDuration = errors.New("config: invalid duration")
)

// Config is the service configuration.
type Config struct {
	Environment string
	ListenAddr  string

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration

	Store store.Config

	CacheCleanupInterval time.Duration

	// CacheMaxEntries marks the cache health check degraded above this
	// size. Zero disables the check.
	CacheMaxEntries int

	CORSOrigins []string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// APIKeys holds "key:principal:role" triples, comma separated.
	APIKeys string

	Observe observe.Config
}

// Load reads the environment and resolves secrets through resolver.
// A nil resolver only expands ${VAR} references.
func Load(ctx context.Context, resolver *secret.Resolver) (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 0),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		JWTIssuer:       getEnv("JWT_ISSUER", "coursecms"),
		JWTAudience:     getEnv("JWT_AUDIENCE", ""),
		Store: store.Config{
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		},
		Observe: observe.Config{
			ServiceName: getEnv("SERVICE_NAME", "coursecms"),
			Version:     getEnv("SERVICE_VERSION", "dev"),
			Tracing: observe.TracingConfig{
				Enabled:   getEnvBool("TRACING_ENABLED", false),
				Exporter:  getEnv("TRACING_EXPORTER", "none"),
				SamplePct: getEnvFloat("TRACING_SAMPLE_PCT", 1.0),
			},
			Metrics: observe.MetricsConfig{
				Enabled:  getEnvBool("METRICS_ENABLED", true),
				Exporter: getEnv("METRICS_EXPORTER", "prometheus"),
			},
			Logging: observe.LoggingConfig{
				Enabled: getEnvBool("LOG_ENABLED", true),
				Level:   getEnv("LOG_LEVEL", "info"),
			},
		},
	}

	var err error
	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", 15 * time.Second, &cfg.ShutdownTimeout},
		{"DB_CONN_MAX_LIFETIME", 5 * time.Minute, &cfg.Store.ConnMaxLifetime},
		{"DB_QUERY_TIMEOUT", 10 * time.Second, &cfg.Store.QueryTimeout},
		{"CACHE_CLEANUP_INTERVAL", cache.DefaultCleanupInterval, &cfg.CacheCleanupInterval},
	}
	for _, d := range durations {
		if *d.dest, err = getEnvDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	secrets := []struct {
		key  string
		dest *string
	}{
		{"DB_DSN", &cfg.Store.DSN},
		{"JWT_SECRET", &cfg.JWTSecret},
		{"API_KEYS", &cfg.APIKeys},
	}
	for _, s := range secrets {
		raw := os.Getenv(s.key)
		if raw == "" {
			continue
		}
		if *s.dest, err = resolver.ResolveValue(ctx, raw); err != nil {
			return nil, fmt.Errorf("config: resolve %s: %w", s.key, err)
		}
	}

	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Store.DSN == "" {
		return ErrMissingDSN
	}
	if c.IsProduction() && c.JWTSecret == "" && c.APIKeys == "" {
		return ErrMissingAuth
	}
	if err := c.Observe.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration rejects malformed values rather than falling back, since
// a typo in a timeout silently changes behavior.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidDuration, key, value)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
