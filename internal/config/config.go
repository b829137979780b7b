package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ShortenerConfig holds settings for the external URL-shortening service.
type ShortenerConfig struct {
	Endpoint   string
	TimeoutSec int
}

// CleanupConfig controls the background purge of expired and abandoned
// share-link records.
type CleanupConfig struct {
	Enabled bool
	// Schedule is a cron spec (robfig/cron/v3 syntax, @every supported).
	Schedule string
	// RetentionDays keeps expired links around for analytics lookups before
	// physical deletion.
	RetentionDays int
	// ProvisionalMaxAgeSec bounds how long an unfinalized record may linger
	// before the sweep reaps it.
	ProvisionalMaxAgeSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	// FrontendBaseURL is the public base used to build the long access URLs
	// handed to the shortener.
	FrontendBaseURL string
	Database        DatabaseConfig
	MinIO           MinIOConfig
	Shortener       ShortenerConfig
	Cleanup         CleanupConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:8080"),
		Port:            getEnv("PORT", "8080"), // default only for non-sensitive value
		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Shortener: ShortenerConfig{
			Endpoint:   getEnv("SHORTENER_ENDPOINT", ""),
			TimeoutSec: getEnvInt("SHORTENER_TIMEOUT_SEC", 10),
		},
		Cleanup: CleanupConfig{
			Enabled:              getEnvBool("CLEANUP_ENABLED", true),
			Schedule:             getEnv("CLEANUP_SCHEDULE", "@every 10m"),
			RetentionDays:        getEnvInt("CLEANUP_RETENTION_DAYS", 30),
			ProvisionalMaxAgeSec: getEnvInt("CLEANUP_PROVISIONAL_MAX_AGE_SEC", 900),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
