package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile       string        // path to the seed.yaml file (entities + user table)
	ReloadInterval time.Duration // interval to reload seed.yaml (default: 24h)
	SweepInterval  time.Duration // interval to sweep dangling bookmarks (default: 24h)

	// Sessions
	JWTSecret       string        // HS256 signing key for session tokens
	TokenTTL        time.Duration // session token lifetime (default: 24h)
	GoogleUserEmail string        // profile resolved by the federated login stand-in

	// Summary collaborator
	GeminiAPIKey    string        // optional, empty = summaries disabled
	GeminiModel     string        // ex: "gemini-2.5-flash"
	SummaryTimeout  time.Duration // per-call timeout (default: 15s)
	SummaryCacheTTL time.Duration // how long generated summaries are reused (default: 24h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict access to specific Host headers
	AdminCIDRS   []string // optional, restrict the admin surface to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limit on credential endpoints
	AuthRateBurst     int // token bucket capacity per IP
	AuthRatePerMinute int // refill per IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SCHOLARPATH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SCHOLARPATH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SCHOLARPATH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SCHOLARPATH_PRETTY_LOG", true),

		// Seed file
		SeedFile:       requireEnv("SCHOLARPATH_SEED_FILE"),
		ReloadInterval: mustDuration("SCHOLARPATH_RELOAD_SEED_INTERVAL", 24*time.Hour),
		SweepInterval:  mustDuration("SCHOLARPATH_SWEEP_INTERVAL", 24*time.Hour),

		// Sessions
		JWTSecret:       requireEnv("SCHOLARPATH_JWT_SECRET"),
		TokenTTL:        mustDuration("SCHOLARPATH_TOKEN_TTL", 24*time.Hour),
		GoogleUserEmail: getenv("SCHOLARPATH_GOOGLE_USER_EMAIL", "student@example.com"),

		// Summary collaborator
		GeminiAPIKey:    getenv("SCHOLARPATH_GEMINI_API_KEY", ""), // Optional, empty = summaries disabled
		GeminiModel:     getenv("SCHOLARPATH_GEMINI_MODEL", "gemini-2.5-flash"),
		SummaryTimeout:  mustDuration("SCHOLARPATH_SUMMARY_TIMEOUT", 15*time.Second),
		SummaryCacheTTL: mustDuration("SCHOLARPATH_SUMMARY_CACHE_TTL", 24*time.Hour),

		// Redis settings
		RedisAddr:             requireEnv("SCHOLARPATH_REDIS_ADDR"),
		RedisUser:             getenv("SCHOLARPATH_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SCHOLARPATH_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("SCHOLARPATH_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("SCHOLARPATH_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SCHOLARPATH_ALLOWED_HOSTS", "")),
		AdminCIDRS:   parseAllowedIPs(getenv("SCHOLARPATH_ADMIN_CIDRS", "")),
		TrustProxy:   mustBool("SCHOLARPATH_TRUST_PROXY", true),

		// Rate limit
		AuthRateBurst:     getenvInt("SCHOLARPATH_AUTH_RATE_BURST", 10),
		AuthRatePerMinute: getenvInt("SCHOLARPATH_AUTH_RATE_PER_MINUTE", 20),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SCHOLARPATH_REDIS_PASSWORD is required when SCHOLARPATH_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.JWTSecret = "***REDACTED***"
		if cfg.GeminiAPIKey != "" {
			cfgCopy.GeminiAPIKey = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
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

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
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
		if b, err := strconv.ParseBool(v); err == nil {
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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
