package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/neexbeast/trip-planner/internal/llm"
)

// LLM backends.
const (
	BackendREST   = "rest"
	BackendSDK    = "sdk"
	BackendOpenAI = "openai"
)

// Reply cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port     string
	APIToken string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	LLMBackend    string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	LLMTimeout       time.Duration
	LLMMaxRetries    int
	LLMRatePerSecond float64
	LLMBurst         int

	CacheBackend string
	RedisURL     string
	CacheTTL     time.Duration

	DefaultTheme       string
	RateLimitPerMinute int
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists. Invalid values fall back to
// their defaults.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		APIToken: os.Getenv("API_TOKEN"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", llm.DefaultModel),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", llm.DefaultBaseURL),
		LLMBackend:    oneOf(getEnv("LLM_BACKEND", BackendREST), BackendREST, BackendREST, BackendSDK, BackendOpenAI),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", llm.DefaultOpenAIModel),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		LLMTimeout:       getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		LLMMaxRetries:    getEnvInt("LLM_MAX_RETRIES", 2),
		LLMRatePerSecond: getEnvFloat("LLM_RATE_PER_SECOND", 2),
		LLMBurst:         getEnvInt("LLM_BURST", 4),

		CacheBackend: oneOf(getEnv("CACHE_BACKEND", CacheNone), CacheNone, CacheNone, CacheMemory, CacheRedis),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:     getEnvDuration("CACHE_TTL", time.Hour),

		DefaultTheme:       getEnv("DEFAULT_THEME", "light"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// oneOf lowercases v and returns it if allowed, otherwise fallback.
func oneOf(v, fallback string, allowed ...string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}
