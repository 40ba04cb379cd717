// Package config provides application configuration loaded from environment
// variables with defaults and validation. It covers the HTTP server, logging,
// storage, chatbot matching, admin auth, rate limiting and observability.
package config

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret     string        // JWT_SECRET
	JWTTTL        time.Duration // JWT_TTL
	AdminUsername string        // ADMIN_USERNAME, seeded when no admin exists
	AdminPassword string        // ADMIN_PASSWORD
}

// ChatbotConfig holds matcher and chat endpoint settings.
type ChatbotConfig struct {
	Locale          language.Tag // CHATBOT_LOCALE, used for case folding
	MaxMessageRunes int          // MAX_MESSAGE_RUNES
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-portfolio-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	LogFile        string // optional rotated log file
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Storage
	DBDSN    string // sqlite path, file: URI or postgres:// URL
	SeedFile string // optional YAML seed for default Q&A rules

	// Chatbot
	Chatbot ChatbotConfig

	// Auth
	Auth AuthConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// TrustedProxies lists the IPs/CIDRs whose X-Forwarded-For and X-Real-IP
	// headers are honoured. Empty trusts none and uses the peer address.
	TrustedProxies []string

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// devJWTSecret is only accepted outside release mode.
const devJWTSecret = "dev-only-insecure-secret"

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		LogFile:        strings.TrimSpace(getenv("LOG_FILE", "")),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		DBDSN:    strings.TrimSpace(getenv("DB_DSN", "portfolio.db")),
		SeedFile: strings.TrimSpace(getenv("SEED_FILE", "")),

		Chatbot: ChatbotConfig{
			MaxMessageRunes: getint("MAX_MESSAGE_RUNES", 2000),
		},

		Auth: AuthConfig{
			JWTSecret:     getenv("JWT_SECRET", ""),
			JWTTTL:        getdur("JWT_TTL", 24*time.Hour),
			AdminUsername: strings.TrimSpace(getenv("ADMIN_USERNAME", "admin")),
			AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		},

		RateRPS:   getfloat("RATE_RPS", 10.0),
		RateBurst: getint("RATE_BURST", 20),

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		TrustedProxies: splitCSV(getenv("TRUSTED_PROXIES", "")),

		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-portfolio-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.Auth.JWTSecret == "" && cfg.GinMode != "release" {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	locale := strings.TrimSpace(getenv("CHATBOT_LOCALE", "und"))
	tag, err := language.Parse(locale)
	if err != nil {
		return cfg, errors.New("CHATBOT_LOCALE must be a valid BCP 47 language tag")
	}
	cfg.Chatbot.Locale = tag

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.DBDSN == "" {
		return cfg, errors.New("DB_DSN must not be empty")
	}
	if cfg.Chatbot.MaxMessageRunes < 1 {
		return cfg, errors.New("MAX_MESSAGE_RUNES must be >= 1")
	}
	if cfg.Auth.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET must be set in release mode")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return cfg, errors.New("JWT_TTL must be > 0")
	}
	if cfg.Auth.AdminUsername == "" || cfg.Auth.AdminPassword == "" {
		return cfg, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	for _, p := range cfg.TrustedProxies {
		if !validProxy(p) {
			return cfg, errors.New("TRUSTED_PROXIES must be a CSV of IP addresses or CIDRs")
		}
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// UsesDefaultAdmin reports whether the seeded admin credentials are the
// well-known defaults.
func (c Config) UsesDefaultAdmin() bool {
	return c.Auth.AdminUsername == "admin" && c.Auth.AdminPassword == "admin123"
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validProxy(p string) bool {
	if _, _, err := net.ParseCIDR(p); err == nil {
		return true
	}
	return net.ParseIP(p) != nil
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
