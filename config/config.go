package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EmailConfig holds outbound email settings. Provider "ses" uses AWS SES;
// anything else falls back to the noop mailer.
type EmailConfig struct {
	Provider       string
	FromAddress    string
	FromName       string
	SESRegion      string
	SESAccessKeyID string
	SESSecretKey   string
}

// Config holds all configuration for the application
type Config struct {
	Environment     string
	Port            string
	MongoURI        string
	MongoDB         string
	AdminEmail      string
	AdminSecretHash string
	AdminSecretSalt string
	JWTSecret       string
	UploadDir       string
	AllowedOrigins  []string
	OtpStore        string // "memory" (default) or "redis"
	RedisURL        string
	Email           EmailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:     env,
		Port:            os.Getenv("PORT"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         os.Getenv("MONGO_DB"),
		AdminEmail:      strings.TrimSpace(strings.ToLower(os.Getenv("ADMIN_EMAIL"))),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		AdminSecretSalt: os.Getenv("ADMIN_SECRET_SALT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		OtpStore:        os.Getenv("OTP_STORE"),
		RedisURL:        os.Getenv("REDIS_URL"),
		Email: EmailConfig{
			Provider:       os.Getenv("EMAIL_PROVIDER"),
			FromAddress:    os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:       os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:      os.Getenv("AWS_SES_REGION"),
			SESAccessKeyID: os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretKey:   os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	// Defaults for non-secret values only.
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "clubcms"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.OtpStore == "" {
		cfg.OtpStore = "memory"
	}

	// Secrets have no defaults: refuse to start without them.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.AdminSecretHash == "" {
		return nil, fmt.Errorf("ADMIN_SECRET_HASH is required")
	}

	return cfg, nil
}
