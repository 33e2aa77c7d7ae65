package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 10s
	RequestTimeout  time.Duration // per-request timeout, AI calls are slow (ex: 120s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// AI service
	OpenAIKey     string
	OpenAIBaseURL string // optional, OpenAI-compatible endpoint
	OpenAIModel   string // chat completions, and analysis without stored prompt
	PromptID      string // optional stored prompt used for page analysis
	PromptVersion string
	Classifier    string // "ai" | "keyword"

	// Store
	StoreDriver string // redis | mongo | badger | memory

	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting at startup
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration
	RedisWarnThreshold    int

	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	BadgerDir        string
	BadgerGCInterval time.Duration // value-log GC interval

	// Taxonomy
	TaxonomyFile           string        // optional YAML file, empty = built-in dictionaries
	TaxonomyReloadInterval time.Duration // periodic reload of TaxonomyFile
	TaxonomyWatch          bool          // reload on file change

	// Access
	CORSOrigins         []string // browser origins allowed to call the API
	AllowedHosts        []string // optional, restrict API access to specific Host headers
	AllowedCIDRS        []string // optional, restrict ops endpoints to these IPs/CIDRs
	TrustProxy          bool     // true => resolve client IP from proxy headers
	RateLimitBurst      int      // AI routes: requests allowed at once per IP
	RateLimitRefillPerM int      // AI routes: tokens refilled per IP per minute
}

// Load reads the configuration from the environment. A .env file in the
// working directory (or LINKVAULT_ENV_FILE) is loaded first when present;
// real environment variables win over it.
func Load() *Config {
	loadDotEnv(getenv("LINKVAULT_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKVAULT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKVAULT_SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:  mustDuration("LINKVAULT_REQUEST_TIMEOUT", 120*time.Second),

		// Logging
		LogLevel:  getenv("LINKVAULT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKVAULT_PRETTY_LOG", false),

		// AI service
		OpenAIKey:     requireEnv("LINKVAULT_OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("LINKVAULT_OPENAI_BASE_URL", ""),
		OpenAIModel:   getenv("LINKVAULT_OPENAI_MODEL", "gpt-4o-mini"),
		PromptID:      getenv("LINKVAULT_PROMPT_ID", ""),
		PromptVersion: getenv("LINKVAULT_PROMPT_VERSION", ""),
		Classifier:    strings.ToLower(getenv("LINKVAULT_CLASSIFIER", "ai")),

		// Store
		StoreDriver: strings.ToLower(getenv("LINKVAULT_STORE_DRIVER", DriverRedis)),

		RedisAddr:             getenv("LINKVAULT_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("LINKVAULT_REDIS_USERNAME", ""),
		RedisPassword:         getenv("LINKVAULT_REDIS_PASSWORD", ""),
		RedisPasswordRequired: mustBool("LINKVAULT_REDIS_PASSWORD_REQUIRED", false),
		RedisDB:               getenvInt("LINKVAULT_REDIS_DB", 0),
		RedisDT:               mustDuration("LINKVAULT_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("LINKVAULT_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("LINKVAULT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:         getenvInt("LINKVAULT_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("LINKVAULT_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("LINKVAULT_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:          mustDuration("LINKVAULT_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("LINKVAULT_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:    getenvInt("LINKVAULT_REDIS_WARN_THRESHOLD", 3),

		MongoURI:            getenv("LINKVAULT_MONGO_URI", ""),
		MongoDatabase:       getenv("LINKVAULT_MONGO_DATABASE", "linkvault"),
		MongoConnectTimeout: mustDuration("LINKVAULT_MONGO_CONNECT_TIMEOUT", 10*time.Second),

		BadgerDir:        getenv("LINKVAULT_BADGER_DIR", "./data/badger"),
		BadgerGCInterval: mustDuration("LINKVAULT_BADGER_GC_INTERVAL", 10*time.Minute),

		// Taxonomy
		TaxonomyFile:           getenv("LINKVAULT_TAXONOMY_FILE", ""),
		TaxonomyReloadInterval: mustDuration("LINKVAULT_TAXONOMY_RELOAD_INTERVAL", time.Hour),
		TaxonomyWatch:          mustBool("LINKVAULT_TAXONOMY_WATCH", true),

		// Access restrictions
		CORSOrigins:         splitAndTrim(getenv("LINKVAULT_CORS_ORIGINS", "http://localhost:5173")),
		AllowedHosts:        splitAndTrim(getenv("LINKVAULT_ALLOWED_HOSTS", "")),
		AllowedCIDRS:        splitAndTrim(getenv("LINKVAULT_ALLOWED_CIDRS", "")),
		TrustProxy:          mustBool("LINKVAULT_TRUST_PROXY", false),
		RateLimitBurst:      getenvInt("LINKVAULT_RATE_LIMIT_BURST", 5),
		RateLimitRefillPerM: getenvInt("LINKVAULT_RATE_LIMIT_REFILL_PER_MIN", 10),
	}

	cfg.validate()

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

func (c *Config) validate() {
	switch c.StoreDriver {
	case DriverRedis:
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			panic("❌ FATAL: LINKVAULT_REDIS_PASSWORD is required when LINKVAULT_REDIS_PASSWORD_REQUIRED=true")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			panic("❌ FATAL: LINKVAULT_MONGO_URI is required when LINKVAULT_STORE_DRIVER=mongo")
		}
	case DriverBadger:
		if c.BadgerDir == "" {
			panic("❌ FATAL: LINKVAULT_BADGER_DIR is required when LINKVAULT_STORE_DRIVER=badger")
		}
	case DriverMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: unknown LINKVAULT_STORE_DRIVER %q", c.StoreDriver))
	}

	if c.Classifier != "ai" && c.Classifier != "keyword" {
		panic(fmt.Sprintf("❌ FATAL: unknown LINKVAULT_CLASSIFIER %q (want ai or keyword)", c.Classifier))
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	const redacted = "***REDACTED***"
	cp.OpenAIKey = redacted
	if cp.RedisPassword != "" {
		cp.RedisPassword = redacted
	}
	if cp.RedisUser != "" {
		cp.RedisUser = redacted
	}
	if cp.MongoURI != "" {
		cp.MongoURI = redacted
	}
	return cp
}

// loadDotEnv loads path without overriding variables already set.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] could not read %s: %v", path, err)
	}
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
