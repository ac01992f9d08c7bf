package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SecurityConfig represents security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

type Config struct {
	Port             int
	SearchAPIURL     string
	SearchTags       string
	FetchMaxAttempts int
	RequestTimeout   time.Duration
	TopicConcurrency int
	RefreshCron      string
	SnapshotTTL      time.Duration
	SearchCacheTTL   time.Duration
	TopicsFile       string
	LogLevel         string
	EnableSPA        bool
	EnableSwagger    bool
	Security         SecurityConfig
}

func Load() *Config {
	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		SearchAPIURL:     getEnv("SEARCH_API_URL", "https://hn.algolia.com/api/v1/search"),
		SearchTags:       getEnv("SEARCH_TAGS", "story"),
		FetchMaxAttempts: getEnvAsInt("FETCH_MAX_ATTEMPTS", 2),
		RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 20*time.Second),
		TopicConcurrency: getEnvAsInt("TOPIC_CONCURRENCY", 4),
		RefreshCron:      getEnvOrEmpty("REFRESH_CRON", "*/15 * * * *"),
		SnapshotTTL:      getEnvAsDuration("SNAPSHOT_TTL", 24*time.Hour),
		SearchCacheTTL:   getEnvAsDuration("SEARCH_CACHE_TTL", time.Minute),
		TopicsFile:       getEnv("TOPICS_FILE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableSPA:        getEnvAsBool("ENABLE_SPA", true),
		EnableSwagger:    getEnvAsBool("ENABLE_SWAGGER", true),
		Security:         loadSecurityConfig(),
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 1<<20), // 1MB
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvOrEmpty lets a set-but-empty variable override the default
func getEnvOrEmpty(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		origins := strings.Split(val, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return defaultVal
}
