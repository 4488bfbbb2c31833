package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel string
	// DevUpstream is the front-end dev server the development relay passes
	// non-relay traffic to.
	DevUpstream string
}

// Auth configures bearer token validation.
type Auth struct {
	JWTSigningKey string
	JWTIssuer     string
}

// Database configures the Postgres connection. An empty URL selects in-memory stores.
type Database struct {
	URL             string
	Driver          string // database/sql driver: "postgres" (lib/pq) or "pgx"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the Redis client backing the distributed run lock.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the alert event publisher. No brokers disables publishing.
type Kafka struct {
	Brokers    []string
	AlertTopic string
	ClientID   string
	Partitions int32
	Replicas   int16
}

// Upstream configures how the service reaches tenant hosts.
type Upstream struct {
	// RelayBase is where the server's own relay is reachable, e.g. http://127.0.0.1:8080/api/ixc.
	RelayBase string
	// RequestTimeout bounds one upstream call; zero leaves calls unbounded.
	RequestTimeout time.Duration
}

// Monitor configures the contract monitor loop.
type Monitor struct {
	Enabled      bool
	WarmUp       time.Duration
	Interval     time.Duration
	Concurrency  int
	CorrectLinks bool
	LockTTL      time.Duration
	// AccountID binds the background monitor to one operator account; it
	// checks that account's active tenant. Empty leaves the monitor idle.
	AccountID string
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Auth     Auth
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Upstream Upstream
	Monitor  Monitor
}

// FromEnv loads .env (when present) and builds the configuration from
// environment variables so main stays lean.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	addr := getString("IXCBRIDGE_ADDR", ":8080")

	cfg := Config{
		Server: Server{
			Addr:        addr,
			LogLevel:    getString("LOG_LEVEL", "info"),
			DevUpstream: getString("DEV_UPSTREAM_URL", "http://127.0.0.1:5173"),
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey: getString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getString("JWT_ISSUER", ""),
		},
		Database: Database{
			URL:             getString("DATABASE_URL", ""),
			Driver:          getString("DATABASE_DRIVER", "postgres"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
		},
		Redis: RedisConfig{
			URL:          getString("REDIS_URL", ""),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
		},
		Kafka: Kafka{
			Brokers:    getList("KAFKA_BROKERS"),
			AlertTopic: getString("KAFKA_ALERT_TOPIC", "ixcbridge.contract-alerts"),
			ClientID:   getString("KAFKA_CLIENT_ID", "ixcbridge"),
			Partitions: int32(getInt("KAFKA_ALERT_PARTITIONS", 1, &errs)),
			Replicas:   int16(getInt("KAFKA_ALERT_REPLICAS", 1, &errs)),
		},
		Upstream: Upstream{
			RelayBase:      getString("UPSTREAM_RELAY_BASE", "http://127.0.0.1"+portOf(addr)+"/api/ixc"),
			RequestTimeout: getDuration("UPSTREAM_REQUEST_TIMEOUT", 0, &errs),
		},
		Monitor: Monitor{
			Enabled:      getBool("MONITOR_ENABLED", true, &errs),
			WarmUp:       getDuration("MONITOR_WARMUP", 10*time.Second, &errs),
			Interval:     getDuration("MONITOR_INTERVAL", 30*time.Minute, &errs),
			Concurrency:  getInt("MONITOR_CONCURRENCY", 1, &errs),
			CorrectLinks: getBool("MONITOR_CORRECT_LINKS", false, &errs),
			LockTTL:      getDuration("MONITOR_LOCK_TTL", 15*time.Minute, &errs),
			AccountID:    getString("MONITOR_ACCOUNT_ID", ""),
		},
	}

	if cfg.Monitor.Interval <= 0 {
		errs = append(errs, errors.New("MONITOR_INTERVAL must be positive"))
	}
	if d := cfg.Database.Driver; d != "postgres" && d != "pgx" {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q: want postgres or pgx", d))
	}
	if cfg.Monitor.Concurrency < 1 {
		errs = append(errs, errors.New("MONITOR_CONCURRENCY must be at least 1"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getBool(key string, def bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func getList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// portOf returns ":port" from a listen address like ":8080" or "0.0.0.0:8080".
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":8080"
}
