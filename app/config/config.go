package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings, read from the environment with an
// optional .env file.
type Config struct {
	Addr       string
	DBPath     string
	ViewsPath  string
	Secret     []byte
	SessionTTL time.Duration
	PageSize   int
}

// Load reads configuration from the environment. Missing values fall back
// to development defaults.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		Addr:       getEnv("INKWELL_ADDR", ":8080"),
		DBPath:     getEnv("INKWELL_DB_PATH", "data/badger"),
		ViewsPath:  getEnv("INKWELL_VIEWS_PATH", ""),
		SessionTTL: getDuration("INKWELL_SESSION_TTL", 7*24*time.Hour),
		PageSize:   getInt("INKWELL_PAGE_SIZE", 10),
	}

	if secret := os.Getenv("INKWELL_SECRET"); secret != "" {
		cfg.Secret = []byte(secret)
	} else {
		// A random secret means sessions and API tokens do not survive a
		// restart. Fine for development, set INKWELL_SECRET in production.
		cfg.Secret = randomSecret()
		log.Println("INKWELL_SECRET not set, using a random secret for this run")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return []byte(hex.EncodeToString(buf))
}
