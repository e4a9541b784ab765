package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix scopes the environment variables read by Load.
const envPrefix = "MENTORS_"

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env         string `koanf:"env"`
	LogLevel    string `koanf:"log_level"`
	Port        string `koanf:"port"`
	PublicURL   string `koanf:"public_url"`
	FrontendURL string `koanf:"frontend_url"`

	DatabaseURL   string `koanf:"database_url" validate:"required"`
	MigrateOnBoot bool   `koanf:"migrate_on_boot"`

	JWTSecret string `koanf:"jwt_secret" validate:"required"`
	JWTTTL    string `koanf:"jwt_ttl"`

	RedisURL      string `koanf:"redis_url"`
	CacheTTLValue string `koanf:"cache_ttl"`

	ResendAPIKey string `koanf:"resend_api_key"`
	MailFrom     string `koanf:"mail_from" validate:"required"`

	NATSURL      string `koanf:"nats_url"`
	ImageBucket  string `koanf:"image_bucket"`
	UploadDir    string `koanf:"upload_dir"`
	MaxImageSize int64  `koanf:"max_image_size"`

	RateLimitValue string `koanf:"rate_limit_restore"`

	TokenTTL         time.Duration   `koanf:"-"`
	CacheTTL         time.Duration   `koanf:"-"`
	RateLimitRestore RateLimitConfig `koanf:"-"`
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{
		Env:            "development",
		LogLevel:       "info",
		Port:           "8080",
		PublicURL:      "http://localhost:8080",
		FrontendURL:    "http://localhost:3000",
		JWTSecret:      "dev-secret",
		JWTTTL:         "24h",
		CacheTTLValue:  "5m",
		MailFrom:       "Mentores <no-reply@mentores.dev>",
		ImageBucket:    "profile-images",
		UploadDir:      "uploads",
		MaxImageSize:   5 << 20,
		RateLimitValue: "5/min",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.TokenTTL = parseDuration(cfg.JWTTTL, 24*time.Hour)
	cfg.CacheTTL = parseDuration(cfg.CacheTTLValue, 5*time.Minute)
	if cfg.MaxImageSize <= 0 {
		cfg.MaxImageSize = 5 << 20
	}

	rl, err := parseRateLimit(cfg.RateLimitValue)
	if err != nil {
		return nil, fmt.Errorf("invalid %sRATE_LIMIT_RESTORE value: %w", envPrefix, err)
	}
	cfg.RateLimitRestore = rl

	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer conveniences.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

func parseRateLimit(value string) (RateLimitConfig, error) {
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

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
