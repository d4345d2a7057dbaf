package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment with an
// optional .env file. Command-line flags in cmd/server can override the
// port, data dir, and static dir.
type Config struct {
	Port      string
	DataDir   string
	StaticDir string

	// GCSBucket switches persistence from local files to GCS objects
	// when set.
	GCSBucket string

	// GeminiAPIKey enables the Gemini chat responder when set; without it
	// the canned placeholder responder is used.
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the configuration. A missing .env file is fine.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         envOr("PORT", "8080"),
		DataDir:      envOr("DATA_DIR", "data"),
		StaticDir:    envOr("STATIC_DIR", "web"),
		GCSBucket:    os.Getenv("GCS_BUCKET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
