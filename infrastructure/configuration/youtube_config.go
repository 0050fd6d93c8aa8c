package configuration

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// YouTubeConfig represents YouTube API configuration
type YouTubeConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Endpoint          string        `mapstructure:"endpoint"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the dashboard can reach the YouTube Data API
func (c *YouTubeConfig) Configured() bool {
	return c != nil && c.APIKey != ""
}

// GetYouTubeConfig returns YouTube configuration from JSON config with environment variable fallback
func GetYouTubeConfig() (*YouTubeConfig, error) {
	config := &YouTubeConfig{
		APIKey:            getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		Endpoint:          getConfigValue(C.YouTube.Endpoint, "YOUTUBE_ENDPOINT", ""),
		RequestsPerSecond: C.YouTube.RequestsPerSecond,
		Burst:             getIntValue(C.YouTube.Burst, "YOUTUBE_BURST", 5),
		Timeout:           time.Duration(getIntValue(C.YouTube.TimeoutSeconds, "YOUTUBE_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if v := os.Getenv("YOUTUBE_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.RequestsPerSecond = f
		}
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 5
	}

	// A missing API key is not an error here; the router serves fallback routes instead.
	return config, nil
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	// Environment variable takes precedence when provided
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	// Otherwise use config value if set and not a placeholder
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

// getIntValue is getConfigValue for integers; unparsable env values are ignored
func getIntValue(configValue int, envKey string, defaultValue int) int {
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}
