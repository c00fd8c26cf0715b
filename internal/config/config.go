package config

import (
	"os"
	"strconv"
	"time"
)

// CountriesConfig holds settings for the upstream REST Countries API.
type CountriesConfig struct {
	BaseURL    string
	TimeoutSec int // 0 disables the client timeout
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level    string
	Timezone string
}

// TracingConfig holds the OpenTelemetry settings this service reads itself.
// Exporter endpoints and sampler settings are read by the SDK from the
// standard OTEL_* variables.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost            string
	Port               string
	Locale             string
	ShutdownTimeoutSec int
	Log                LogConfig
	Countries          CountriesConfig
	Tracing            TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		Locale:             getEnv("LOCALE", "en-US"),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Timezone: getEnv("LOG_TIMEZONE", "UTC"),
		},
		Countries: CountriesConfig{
			BaseURL:    getEnv("COUNTRIES_BASE_URL", "https://restcountries.com/v3.1"),
			TimeoutSec: getEnvInt("COUNTRIES_TIMEOUT_SEC", 0),
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "countrystats"),
		},
	}
}

// Timeout returns the upstream timeout as a duration.
func (c CountriesConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// Location resolves the log timezone, falling back to UTC on unknown names.
func (c LogConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
