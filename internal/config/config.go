package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with MARKS_STORE.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":3001"
	BasePath        string        // API mount point, ex: "/api"
	CORSOrigins     []string      // allowed browser origins
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store        string // "sqlite" | "redis" | "memory"
	SQLiteDriver string // "sqlite3" (mattn, cgo) | "sqlite" (modernc)
	SQLitePath   string // database file, ":memory:" for a throwaway db
	SeedFile     string // optional bookmark file imported on startup

	SeedReloadInterval time.Duration // re-import SeedFile this often, 0 disables

	// Redis, only read when Store == "redis"
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => refuse to start without a password
	RedisDB               int           // Redis DB number
	RedisPrefix           string        // key namespace
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisPoolSize         int           // connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, doubles each time
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For style headers
}

// Load reads the configuration from the environment. Invalid or missing
// required settings are fatal and panic with a readable message.
func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MARKS_LISTEN_PORT", ":3001"),
		BasePath:        normalizeBasePath(getenv("MARKS_BASE_PATH", "/api")),
		CORSOrigins:     splitAndTrim(getenv("MARKS_CORS_ORIGIN", "http://localhost:3000")),
		ShutdownTimeout: mustDuration("MARKS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("MARKS_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("MARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKS_PRETTY_LOG", false),

		// Storage
		Store:        strings.ToLower(getenv("MARKS_STORE", StoreSQLite)),
		SQLiteDriver: getenv("MARKS_SQLITE_DRIVER", "sqlite3"),
		SQLitePath:   getenv("MARKS_SQLITE_PATH", "data/marks.db"),
		SeedFile:     getenv("MARKS_SEED_FILE", ""),

		SeedReloadInterval: mustDuration("MARKS_SEED_RELOAD_INTERVAL", 0),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("MARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("MARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("MARKS_TRUST_PROXY", false),
	}

	switch cfg.Store {
	case StoreSQLite:
		if cfg.SQLiteDriver != "sqlite3" && cfg.SQLiteDriver != "sqlite" {
			panic(fmt.Sprintf("❌ FATAL: MARKS_SQLITE_DRIVER must be sqlite3 or sqlite, got %q", cfg.SQLiteDriver))
		}
	case StoreRedis:
		cfg.loadRedis()
	case StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: MARKS_STORE must be sqlite, redis or memory, got %q", cfg.Store))
	}

	return cfg
}

func (cfg *Config) loadRedis() {
	cfg.RedisAddr = requireEnv("MARKS_REDIS_ADDR")
	cfg.RedisUser = getenv("MARKS_REDIS_USERNAME", "")
	cfg.RedisPassword = getenv("MARKS_REDIS_PASSWORD", "")
	cfg.RedisPasswordRequired = mustBool("MARKS_REDIS_PASSWORD_REQUIRED", false)
	cfg.RedisDB = getenvInt("MARKS_REDIS_DB", 0)
	cfg.RedisPrefix = getenv("MARKS_REDIS_PREFIX", "marks:")
	cfg.RedisDT = mustDuration("MARKS_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("MARKS_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("MARKS_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisPoolSize = getenvInt("MARKS_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("MARKS_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("MARKS_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisMaxWait = mustDuration("MARKS_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("MARKS_REDIS_PING_TIMEOUT", 5*time.Second)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MARKS_REDIS_PASSWORD is required when MARKS_REDIS_PASSWORD_REQUIRED=true")
	}
}

// Redacted returns a copy safe to log.
func (cfg Config) Redacted() Config {
	if cfg.RedisPassword != "" {
		cfg.RedisPassword = "***REDACTED***"
	}
	if cfg.RedisUser != "" {
		cfg.RedisUser = "***REDACTED***"
	}
	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// normalizeBasePath yields "" for the root or "/x" without a trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
