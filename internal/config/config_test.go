package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "GEMINI_MODEL", "DEFAULT_BUSINESS", "ALLOWED_ORIGIN", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.GeminiAPIKey != "" {
		t.Errorf("Expected empty API key, got %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemma-3-4b-it" {
		t.Errorf("Expected default model gemma-3-4b-it, got %q", cfg.GeminiModel)
	}
	if cfg.DefaultBusiness != "fitness" {
		t.Errorf("Expected default business fitness, got %q", cfg.DefaultBusiness)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("Expected permissive origin, got %q", cfg.AllowedOrigin)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %q", cfg.Port)
	}
}

func TestLoad_MissingAPIKeyDoesNotPanic(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "   ")

	cfg := Load()
	if cfg.GeminiAPIKey != "" {
		t.Fatalf("expected whitespace key to be treated as missing, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadWidget_Overrides(t *testing.T) {
	t.Setenv("RELAY_URL", "https://relay.example.test/")
	t.Setenv("BUSINESS_ID", "fitness")
	t.Setenv("RELAY_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_FILE", "")

	cfg := LoadWidget()

	if cfg.RelayURL != "https://relay.example.test/" {
		t.Errorf("Expected relay url override, got %q", cfg.RelayURL)
	}
	if cfg.BusinessID != "fitness" {
		t.Errorf("Expected business override, got %q", cfg.BusinessID)
	}
	if cfg.RelayTimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", cfg.RelayTimeoutSeconds)
	}
	if cfg.Log.File != "bizchat-widget.log" {
		t.Errorf("Expected default widget log file, got %q", cfg.Log.File)
	}
	if cfg.ClinicPhone != "97171 55497" {
		t.Errorf("Expected default clinic phone, got %q", cfg.ClinicPhone)
	}
}

func TestLoadWidget_NoTimeoutByDefault(t *testing.T) {
	t.Setenv("RELAY_TIMEOUT_SECONDS", "")

	if got := LoadWidget().RelayTimeoutSeconds; got != 0 {
		t.Errorf("Expected unbounded relay timeout by default, got %d", got)
	}
}
