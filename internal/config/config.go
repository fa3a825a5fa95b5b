package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string
	AppEnv   string

	AllowedOrigins []string

	NASAAPIKey        string
	NASABaseURL       string
	NASAImagesBaseURL string
	NASATimeout       time.Duration
	NASALimitRPS      float64
	NASALimitBurst    int

	HFAPIToken       string
	InferenceBaseURL string
	InferenceTimeout time.Duration

	RateLimitGeneral RateTier
	RateLimitAI      RateTier
	RateLimitHeavy   RateTier

	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

// RateTier is one per-IP request budget over a rolling window.
type RateTier struct {
	Requests int
	Window   time.Duration
}

func (c Config) DevMode() bool {
	return c.AppEnv == "development"
}

// NASADemoMode reports whether the gateway runs on NASA's public demo key,
// which carries much tighter upstream quotas.
func (c Config) NASADemoMode() bool {
	return c.NASAAPIKey == "" || c.NASAAPIKey == "DEMO_KEY"
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "3000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),
		AppEnv:   mustEnv("APP_ENV", "production"),

		AllowedOrigins: splitCSV(mustEnv("ALLOWED_ORIGINS", "*")),

		NASAAPIKey:        mustEnv("NASA_API_KEY", "DEMO_KEY"),
		NASABaseURL:       mustEnv("NASA_BASE_URL", "https://api.nasa.gov"),
		NASAImagesBaseURL: mustEnv("NASA_IMAGES_BASE_URL", "https://images-api.nasa.gov"),
		NASATimeout:       mustEnvDuration("NASA_TIMEOUT", 30*time.Second),
		NASALimitRPS:      mustEnvFloat("NASA_LIMIT_RPS", 5),
		NASALimitBurst:    mustEnvInt("NASA_LIMIT_BURST", 10),

		HFAPIToken:       mustEnv("HF_API_TOKEN", ""),
		InferenceBaseURL: mustEnv("INFERENCE_BASE_URL", "https://api-inference.huggingface.co/models"),
		InferenceTimeout: mustEnvDuration("INFERENCE_TIMEOUT", 60*time.Second),

		RateLimitGeneral: RateTier{
			Requests: mustEnvInt("RATE_LIMIT_GENERAL_REQUESTS", 100),
			Window:   mustEnvDuration("RATE_LIMIT_GENERAL_WINDOW", 15*time.Minute),
		},
		RateLimitAI: RateTier{
			Requests: mustEnvInt("RATE_LIMIT_AI_REQUESTS", 50),
			Window:   mustEnvDuration("RATE_LIMIT_AI_WINDOW", 15*time.Minute),
		},
		RateLimitHeavy: RateTier{
			Requests: mustEnvInt("RATE_LIMIT_HEAVY_REQUESTS", 10),
			Window:   mustEnvDuration("RATE_LIMIT_HEAVY_WINDOW", 5*time.Minute),
		},

		BreakerMinRequests:      uint32(mustEnvInt("BREAKER_MIN_REQUESTS", 5)),
		BreakerFailureRatio:     mustEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
		BreakerOpenTimeout:      mustEnvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		BreakerHalfOpenMaxCalls: uint32(mustEnvInt("BREAKER_HALF_OPEN_MAX_CALLS", 2)),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
