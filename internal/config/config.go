package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Addr              string
	Environment       string
	TrustProxy        bool
	CORSOrigins       []string
	EventRateLimit    int // requests per minute per IP on /event, 0 disables
	MaxInFlight       int // 0 disables
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	MetricsAddr       string

	// DB
	DatabaseURL     string
	PoolSize        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AcquireTimeout  time.Duration

	// Logging
	LogLevel      string
	LogSQL        bool
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

var ErrMissingEnv = errors.New("missing required env")

// LoadDotenv reads .env files into the process environment. Missing files are
// ignored and variables already set are never overridden.
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("config: could not load env file", "file", f, "error", err)
		}
	}
}

func Load() (Config, error) {
	var missing []string
	must := func(k string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			missing = append(missing, k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL: must("DATABASE_URL"),
		Addr:        must("SERVER_ADDRESS"),

		Environment:       getenv("ENVIRONMENT", "dev"),
		TrustProxy:        getbool("TRUST_PROXY", false),
		CORSOrigins:       getlist("CORS_ORIGINS", []string{"https://*.lotuscars.com.cn"}),
		EventRateLimit:    getint("EVENT_RATE_LIMIT", 0),
		MaxInFlight:       getint("HTTP_MAX_INFLIGHT", 0),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		ShutdownTimeout:   getdur("SHUTDOWN_TIMEOUT", 15*time.Second),
		MetricsAddr:       getenv("METRICS_ADDR", ""),

		PoolSize:        getint("DB_POOL_SIZE", 10),
		MaxIdleConns:    getint("DB_MAX_IDLE_CONNS", 0),
		ConnMaxLifetime: getdur("DB_CONN_MAX_LIFETIME", time.Hour),
		AcquireTimeout:  getdur("DB_ACQUIRE_TIMEOUT", 5*time.Second),

		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogSQL:        getbool("LOG_SQL", false),
		LogFile:       getenv("LOG_FILE", ""),
		LogMaxSizeMB:  getint("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getint("LOG_MAX_BACKUPS", 5),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	if cfg.PoolSize <= 0 {
		slog.Warn("config: invalid pool size, defaulting", "pool_size", cfg.PoolSize)
		cfg.PoolSize = 10
	}
	if cfg.MaxIdleConns <= 0 || cfg.MaxIdleConns > cfg.PoolSize {
		cfg.MaxIdleConns = cfg.PoolSize
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		slog.Warn("config: invalid int, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getlist(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
