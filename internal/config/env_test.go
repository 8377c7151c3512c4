package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"WEALTHLAB_API_BASE_URL", "WEALTHLAB_HTTP_TIMEOUT", "PORT", "WEALTHLAB_LOG_LEVEL", "WEALTHLAB_EXCHANGE_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	s := LoadSettings()
	assert.Equal(t, DefaultAPIBaseURL, s.APIBaseURL)
	assert.Equal(t, 10*time.Second, s.HTTPTimeout)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 4, s.ExchangeConcurrency)
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	t.Setenv("WEALTHLAB_API_BASE_URL", "  https://api.example.com/  ")
	t.Setenv("WEALTHLAB_HTTP_TIMEOUT", "3s")
	t.Setenv("PORT", "9090")
	t.Setenv("WEALTHLAB_LOG_LEVEL", "debug")
	t.Setenv("WEALTHLAB_EXCHANGE_CONCURRENCY", "0")

	s := LoadSettings()
	assert.Equal(t, "https://api.example.com", s.APIBaseURL)
	assert.Equal(t, 3*time.Second, s.HTTPTimeout)
	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 1, s.ExchangeConcurrency)
}

func TestLoadSettings_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("WEALTHLAB_HTTP_TIMEOUT", "soon")
	t.Setenv("WEALTHLAB_EXCHANGE_CONCURRENCY", "many")

	s := LoadSettings()
	assert.Equal(t, 10*time.Second, s.HTTPTimeout)
	assert.Equal(t, 4, s.ExchangeConcurrency)
}

func TestSettings_APIURL(t *testing.T) {
	s := &Settings{APIBaseURL: "http://localhost:8000"}
	tests := []struct {
		endpoint string
		want     string
	}{
		{"/api/v1/domestic-etfs", "http://localhost:8000/api/v1/domestic-etfs"},
		{"api/v1/usa-etfs", "http://localhost:8000/api/v1/usa-etfs"},
		{"https://other.example.com/x", "https://other.example.com/x"},
		{"http://plain.example.com/y", "http://plain.example.com/y"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, s.APIURL(tt.endpoint))
		})
	}

	trailing := &Settings{APIBaseURL: "http://localhost:8000/"}
	assert.Equal(t, "http://localhost:8000/healthz", trailing.APIURL("/healthz"))
}
