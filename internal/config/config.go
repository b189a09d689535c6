package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Debug bool

	// LLM
	LLMProvider string // anthropic, openai, ollama, gemini
	LLMAPIKey   string
	LLMModel    string
	OllamaURL   string

	// Sandbox
	SandboxTimeout time.Duration

	// Exercises
	ExercisesPath string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Debug:          getEnvBool("DEBUG", false),
		LLMProvider:    getEnv("DRILL_PROVIDER", "anthropic"),
		LLMAPIKey:      getEnv("DRILL_API_KEY", ""),
		LLMModel:       getEnv("DRILL_MODEL", ""),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		SandboxTimeout: time.Duration(getEnvInt("DRILL_SANDBOX_TIMEOUT", 30)) * time.Second,
		ExercisesPath:  getEnv("DRILL_EXERCISES_PATH", "./exercises"),
	}
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
