package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the chatbot backend, no trailing slash.
	BackendURL string
	// Per-request timeout for every gateway call.
	RequestTimeout time.Duration
	// Path of the cross-view recommendation handoff file.
	HandoffFile string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		BackendURL:     getEnvDefault("BACKEND_URL", "http://localhost:20005"),
		RequestTimeout: time.Duration(getEnvIntDefault("REQUEST_TIMEOUT", 60)) * time.Second,
		HandoffFile:    getEnvDefault("HANDOFF_FILE", defaultHandoffPath()),
	}
}

func defaultHandoffPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recommended_courses.json"
	}
	return filepath.Join(home, ".kwchatbot", "recommended_courses.json")
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
