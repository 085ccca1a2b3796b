package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects everything read from the environment. Every field has a
// fallback so the app boots in a bare dev environment.
type Config struct {
	SecretKey   string
	DatabaseDSN string
	Admins      []string
	UploadDir   string
	Port        string
}

// Load reads .env if present and resolves all settings.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		SecretKey:   getEnv("SECRET_KEY", "hard to guess string"),
		DatabaseDSN: databaseDSN(),
		Admins:      splitList(os.Getenv("ADMINS")),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		Port:        getEnv("PORT", "8080"),
	}
}

// databaseDSN prefers a full DATABASE_URL and otherwise assembles a DSN from
// the discrete DB_* variables.
func databaseDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getEnv("DB_NAME", "webshop")

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
