package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Public base URL used inside QR payloads and verification links
	PublicBaseURL string

	SendgridApiKey string
	EmailSender    string
	EmailFromName  string

	SmsApiURL string
	SmsApiKey string
	SmsSender string

	// Default / max page sizes for the public graduates listing
	GraduatesDefaultLimit int
	GraduatesMaxLimit     int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@ojt.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "OJT Program Office"),

		SmsApiURL: getEnv("SMS_API_URL", ""),
		SmsApiKey: getEnv("SMS_API_KEY", ""),
		SmsSender: getEnv("SMS_SENDER_ID", "OJTMGMT"),

		GraduatesDefaultLimit: getEnvInt("GRADUATES_DEFAULT_LIMIT", 50),
		GraduatesMaxLimit:     getEnvInt("GRADUATES_MAX_LIMIT", 500),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Certificate emails will be logged only.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
