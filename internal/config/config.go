package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL takes precedence over the discrete components when set.
type DatabaseConfig struct {
	URL                string
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

// AIConfig holds settings for the external completion backend.
// Provider selects the implementation: "gemini" (default) or "openai".
// BaseURL is only used by the openai provider and allows pointing at any
// OpenAI-compatible endpoint (including local servers).
type AIConfig struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	TimeoutSec int
}

// OCRConfig holds settings for the tesseract OCR pass.
// Languages uses tesseract's "+"-joined language pack syntax.
type OCRConfig struct {
	Binary    string
	Languages string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Host           string
	Port           string
	CORSOrigin     string
	LogLevel       string
	MaxUploadBytes int
	Timezone       string
	Database       DatabaseConfig
	AI             AIConfig
	OCR            OCRConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	provider := getEnv("AI_PROVIDER", "gemini")

	return &AppConfig{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"), // default only for non-sensitive value
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_SIZE_BYTES", 10*1024*1024),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
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
		AI: AIConfig{
			Provider:   provider,
			APIKey:     aiAPIKey(provider),
			Model:      getEnv("AI_MODEL", "gemini-2.5-flash"),
			BaseURL:    getEnv("OPENAI_BASE_URL", ""),
			TimeoutSec: getEnvInt("AI_TIMEOUT_SEC", 60),
		},
		OCR: OCRConfig{
			Binary:    getEnv("TESSERACT_PATH", "tesseract"),
			Languages: getEnv("OCR_LANGUAGES", "eng+por"),
		},
	}
}

// Addr is the listen address: bind host plus port.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// aiAPIKey resolves the credential for the selected provider. Each provider
// only ever sees its own key, even when both are present in the environment.
func aiAPIKey(provider string) string {
	if provider == "openai" {
		return getEnv("OPENAI_API_KEY", "")
	}
	return getEnv("GEMINI_API_KEY", "")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
