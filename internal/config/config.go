package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string

	// Businesses
	DefaultBusiness      string
	BusinessProfilesFile string

	// CORS
	AllowedOrigin string

	Log LogConfig
}

// LogConfig is shared by the relay and the widget.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// WidgetConfig drives the terminal chat widget.
type WidgetConfig struct {
	RelayURL            string
	BusinessID          string
	BotName             string
	ClinicPhone         string
	RelayTimeoutSeconds int

	Log LogConfig
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),
		// A missing key is reported per request, not at startup.
		GeminiAPIKey:         strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemma-3-4b-it"),
		GeminiEndpoint:       getEnvOrDefault("GEMINI_ENDPOINT", ""),
		DefaultBusiness:      getEnvOrDefault("DEFAULT_BUSINESS", "fitness"),
		BusinessProfilesFile: getEnvOrDefault("BUSINESS_PROFILES_FILE", ""),
		AllowedOrigin:        getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg
}

func LoadWidget() *WidgetConfig {
	godotenv.Load()

	return &WidgetConfig{
		RelayURL:            getEnvOrDefault("RELAY_URL", "http://localhost:8080/"),
		BusinessID:          getEnvOrDefault("BUSINESS_ID", "dental"),
		BotName:             getEnvOrDefault("BOT_NAME", "ClinicBot"),
		ClinicPhone:         getEnvOrDefault("CLINIC_PHONE", "97171 55497"),
		RelayTimeoutSeconds: getEnvAsIntOrDefault("RELAY_TIMEOUT_SECONDS", 0),
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			// The terminal belongs to the UI, so logs go to a file by default.
			File: getEnvOrDefault("LOG_FILE", "bizchat-widget.log"),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
