package confs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionTTL = 24 * time.Hour

// Config holds every externally supplied setting of the server.
type Config struct {
	SessionSecret string
	DatabaseDSN   string
	WeatherAPIKey string
	Port          string
	SessionTTL    time.Duration
	LogLevel      string
}

// LoadEnvFile loads environment variables from a .env file if present.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the configuration from the environment and validates
// that all required settings are present.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SessionSecret: os.Getenv("SESSION_SECRET"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		Port:          os.Getenv("PORT"),
		SessionTTL:    defaultSessionTTL,
		LogLevel:      strings.ToLower(os.Getenv("LOG_LEVEL")),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", raw)
		}
		cfg.SessionTTL = ttl
	}

	var missing []string
	dsn, err := DatabaseDSN()
	if err != nil {
		missing = append(missing, "DB_URL")
	}
	cfg.DatabaseDSN = dsn

	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if cfg.WeatherAPIKey == "" {
		missing = append(missing, "WEATHER_API_KEY")
	}
	if cfg.Port == "" {
		missing = append(missing, "PORT")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// DatabaseDSN builds the PostgreSQL connection string either from DB_URL or
// from the individual DB_* parameters.
func DatabaseDSN() (string, error) {
	if dsn := os.Getenv("DB_URL"); dsn != "" {
		// Hosted databases expect TLS unless told otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if dbHost == "localhost" || dbHost == "127.0.0.1" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbHost, dbUser, dbPassword, dbName, dbPort, sslMode), nil
}
