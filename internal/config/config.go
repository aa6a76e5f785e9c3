package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is loaded once at
// startup and passed explicitly into every component that needs it; secrets are
// never looked up ambiently after that.
type Config struct {
	AppMode     string
	Port        string
	FrontendURL string
	Database    DatabaseConfig
	JWT         JWTConfig
	CSRF        CSRFConfig
	Google      GoogleConfig
	SMTP        SMTPConfig
	Cookie      CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds identity token configuration
type JWTConfig struct {
	Secret     string
	ExpireDays int
}

// CSRFConfig holds the double-submit token secret
type CSRFConfig struct {
	Secret string
}

// GoogleConfig holds Google OAuth configuration
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host      string
	Port      string
	Email     string
	Password  string
	FromName  string
	FromEmail string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	expireDays, _ := strconv.Atoi(getEnv("JWT_EXPIRE_DAYS", "30"))

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "5000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "roomly"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "default_secret"),
			ExpireDays: expireDays,
		},
		CSRF: CSRFConfig{
			Secret: getEnv("CSRF_SECRET", "default_csrf_secret"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),
			AuthURL:      getEnv("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/auth"),
			TokenURL:     getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			UserInfoURL:  getEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnv("SMTP_PORT", "587"),
			Email:     getEnv("SMTP_EMAIL", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromName:  getEnv("FROM_NAME", "Roomly"),
			FromEmail: getEnv("FROM_EMAIL", "noreply@roomly.app"),
		},
		Cookie: loadCookieConfig(appMode),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", strconv.FormatBool(mode == "prod")))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "strict"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS. Never "*": responses
// carry credentialed cookies, so the origin list must be explicit.
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		return c.FrontendURL
	}
	return origins
}
