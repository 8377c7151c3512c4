package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the reference-data backend used when none is configured.
const DefaultAPIBaseURL = "http://localhost:8000"

// DefaultHTTPTimeout bounds a backend request when no timeout is configured.
const DefaultHTTPTimeout = 10 * time.Second

// Settings holds the runtime settings read from the environment.
type Settings struct {
	APIBaseURL          string
	HTTPTimeout         time.Duration
	Port                string
	LogLevel            string
	ExchangeConcurrency int
}

// LoadSettings reads settings from the environment, after loading a .env file
// from the working directory when present.
func LoadSettings() *Settings {
	_ = godotenv.Load()

	base := strings.TrimSpace(os.Getenv("WEALTHLAB_API_BASE_URL"))
	if base == "" {
		base = DefaultAPIBaseURL
	}

	s := &Settings{
		APIBaseURL:          strings.TrimSuffix(base, "/"),
		HTTPTimeout:         getEnvDuration("WEALTHLAB_HTTP_TIMEOUT", DefaultHTTPTimeout),
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("WEALTHLAB_LOG_LEVEL", "info"),
		ExchangeConcurrency: getEnvInt("WEALTHLAB_EXCHANGE_CONCURRENCY", 4),
	}
	if s.ExchangeConcurrency < 1 {
		s.ExchangeConcurrency = 1
	}
	return s
}

// APIURL joins endpoint onto the base URL. Absolute URLs pass through.
func (s *Settings) APIURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return strings.TrimSuffix(s.APIBaseURL, "/") + endpoint
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
