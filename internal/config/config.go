package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting of the application.
// Values come from environment variables with sensible development defaults.
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	MinIO      MinIOConfig
	SMTP       SMTPConfig
	Admin      AdminConfig
	Geocoder   GeocoderConfig
	LocalStore LocalStoreConfig
	Jobs       JobsConfig
}

type AppConfig struct {
	Env       string
	Port      string
	PublicURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

type AdminConfig struct {
	// PasswordHash is the bcrypt hash of the shared admin password.
	// Password is the plain-text fallback for local development.
	PasswordHash string
	Password     string
	JWTSecret    string
	TokenExpiry  int // hours
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type LocalStoreConfig struct {
	Path string
}

type JobsConfig struct {
	NotifyBatchSize  int
	NotifyBatchPause time.Duration
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Env:       getEnv("APP_ENV", "development"),
			Port:      getEnv("APP_PORT", "8080"),
			PublicURL: getEnv("APP_PUBLIC_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "travelblog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "travel-photos"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@travelblog.local"),
			FromName: getEnv("SMTP_FROM_NAME", "Carnet de voyage"),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenExpiry:  getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Geocoder: GeocoderConfig{
			BaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("GEOCODER_USER_AGENT", "travelblog-backend/1.0"),
			Timeout:   getEnvDuration("GEOCODER_TIMEOUT", 5*time.Second),
			CacheTTL:  getEnvDuration("GEOCODER_CACHE_TTL", 15*time.Minute),
		},
		LocalStore: LocalStoreConfig{
			Path: getEnv("LOCAL_STORE_PATH", "./data/drafts.db"),
		},
		Jobs: JobsConfig{
			NotifyBatchSize:  getEnvInt("NOTIFY_BATCH_SIZE", 40),
			NotifyBatchPause: getEnvDuration("NOTIFY_BATCH_PAUSE", 2*time.Second),
		},
	}
}

// Validate enforces the settings that must not fall back to defaults
// outside development.
func (c *Config) Validate() error {
	if c.App.Env != "production" {
		return nil
	}

	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required in production")
	}
	if c.Admin.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Database.Password == "postgres" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
