package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"staffd/internal/domain"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	JWTSecret         string
	JWTIssuer         string
	JWTExpirationSecs int

	AuthBypassPaths     []string
	AuthDetailedLogging bool

	AuthzMode       string
	AuthzPolicyPath string

	ExportBatchSize int

	LoginRateLimitRequests      int
	LoginRateLimitWindowSeconds int
	RateLimitFailClosed         bool
	RateLimitMaxKeys            int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:    addr,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    envDefault("LOG_LEVEL", "info"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         envDefault("JWT_ISSUER", "EMS"),
		JWTExpirationSecs: envIntDefault("JWT_EXPIRATION_SECONDS", 3600),

		AuthBypassPaths: envListDefault("JWT_BYPASS_PATHS",
			"/users/register,/users/login,/healthz,/docs/*"),
		AuthDetailedLogging: envBoolDefault("JWT_FILTER_DETAILED_LOGGING", false),

		AuthzMode:       envDefault("AUTHZ_MODE", "table"),
		AuthzPolicyPath: os.Getenv("AUTHZ_POLICY_PATH"),

		ExportBatchSize: envIntDefault("EXPORT_BATCH_SIZE", 500),

		LoginRateLimitRequests:      envIntDefault("LOGIN_RATE_LIMIT_REQUESTS", 0),
		LoginRateLimitWindowSeconds: envIntDefault("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitFailClosed:         envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RateLimitMaxKeys:            envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envIntDefault("REDIS_DB", 0),
	}
}

// Validate reports startup-fatal misconfiguration. A missing JWT secret must
// stop the process before the listener binds rather than fail on the first
// request.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return domain.ErrSecretKeyNotFound
	}
	return nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationSecs) * time.Second
}

func (c Config) LoginRateLimitWindow() time.Duration {
	if c.LoginRateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.LoginRateLimitWindowSeconds) * time.Second
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}

func envListDefault(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
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
