package config

import (
	"log"
	"os"
	"time"
)

// Config holds all runtime configuration for the application.
type Config struct {
	DSN        string
	Addr       string
	StorageDir string
	JWTSecret  string
	TokenTTL   time.Duration
	CORSOrigin string
}

// Load reads configuration from environment variables, falling back to
// development defaults. A missing .env file is not an error; the caller is
// expected to have run godotenv.Load already (see cmd/api).
func Load() *Config {
	cfg := &Config{
		DSN:        getEnv("DB_DSN", "root:secret@tcp(127.0.0.1:3306)/freshmart?parseTime=true"),
		Addr:       getEnv("ADDR", ":8080"),
		StorageDir: getEnv("STORAGE_DIR", "./storage"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		TokenTTL:   72 * time.Hour,
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is not set, using an insecure development key")
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Printf("Ignoring invalid TOKEN_TTL %q: %v", ttl, err)
		} else {
			cfg.TokenTTL = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
