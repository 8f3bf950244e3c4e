package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by both front-end binaries.
type Config struct {
	Addr       string
	PacksDir   string
	SessionDB  string
	RescanCron string
}

// Load reads a .env file when one is present, then the process
// environment, falling back to defaults. Callers receive a value;
// there is no process-global configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		Addr:       getEnv("ADDR", ":8080"),
		PacksDir:   getEnv("PACKS_DIR", "packs"),
		SessionDB:  getEnv("SESSION_DB", "flashcards.db"),
		RescanCron: getEnv("RESCAN_CRON", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
