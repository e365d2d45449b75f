package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything main needs to wire the application.
type Config struct {
	Port          string
	DBDriver      string
	DBDSN         string
	SessionSecret []byte
	LogLevel      string
	LogFile       string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables.")
	}

	cfg := Config{
		Port:     getenv("PORT", "5000"),
		DBDriver: getenv("DATABASE_DRIVER", "sqlite"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
	cfg.DBDSN = databaseDSN(cfg.DBDriver)

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	}

	return cfg
}

// databaseDSN prefers DATABASE_URL. For postgres it falls back to the
// discrete DB_* variables.
func databaseDSN(driver string) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	if driver != "postgres" {
		return "warbler.db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_NAME", "warbler"),
		getenv("DB_SSLMODE", "disable"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
