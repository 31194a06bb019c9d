package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/employee-search/api/internal/provider"
)

// defaultCORSOrigins are the client applications allowed by default.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"https://famous-elf-608456.netlify.app",
	"https://netlify.app",
}

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env                string
	LogLevel           string
	Port               string
	Provider           provider.Config
	AllowRequestAPIKey bool
	PhoneRegion        string
	RateLimitSearch    RateLimitConfig
	CORSAllowOrigins   []string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
// Provider settings left unset in the environment are taken from PROVIDERS_FILE
// when one is given.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                getEnv("APP_ENV", "prod"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               getEnv("PORT", "8080"),
		AllowRequestAPIKey: parseBool(getEnv("ALLOW_REQUEST_API_KEY", "true"), true),
		PhoneRegion:        strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "US")),
		CORSAllowOrigins:   parseList(os.Getenv("CORS_ALLOW_ORIGINS"), defaultCORSOrigins),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Provider: provider.Config{
			Name:           strings.ToLower(getEnv("SEARCH_PROVIDER", provider.NamePDL)),
			CredentialRef:  os.Getenv("PROVIDER_API_KEY"),
			Endpoint:       os.Getenv("PROVIDER_ENDPOINT"),
			DefaultCountry: os.Getenv("PROVIDER_DEFAULT_COUNTRY"),
		},
	}

	if v := os.Getenv("PROVIDER_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid PROVIDER_PAGE_SIZE value: %q", v)
		}
		cfg.Provider.PageSize = size
	}
	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT value: %q", v)
		}
		cfg.Provider.Timeout = d
	}

	if path := os.Getenv("PROVIDERS_FILE"); path != "" {
		overrides, err := LoadProviderOverrides(path)
		if err != nil {
			return nil, err
		}
		overrides.Apply(&cfg.Provider)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

// JWTEnabled reports whether bearer tokens are required on the search route.
func (c *Config) JWTEnabled() bool {
	return c.JWTSecret != ""
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	if strings.EqualFold(strings.TrimSpace(value), "off") {
		return RateLimitConfig{}, nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return b
}

func parseList(input string, fallback []string) []string {
	var out []string
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
