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

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	StripeApiURL       string
	StripeApiSecretKey string
	PaymentCurrency    string
	PaymentVerify      bool // verify the payment intent with Stripe before settling

	SendgridApiKey string
	EmailSender    string

	RecoverySweepCron string
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
		Port:   getEnv("PORT", "5000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASS", ""),
		DBName:     getEnv("DB_NAME", "lotuslight"),
		DBPort:     getEnv("DB_PORT", "5432"),

		StripeApiURL:       getEnv("STRIPE_API_URL", "https://api.stripe.com/v1/"),
		StripeApiSecretKey: getEnv("STRIPE_API_SECRET_KEY", ""),
		PaymentCurrency:    getEnv("PAYMENT_CURRENCY", "usd"),
		PaymentVerify:      getEnvBool("PAYMENT_VERIFY", true),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@lotuslight.studio"),

		// Every 5 minutes by default; completes settlements that crashed
		// after the payment record was written.
		RecoverySweepCron: getEnv("RECOVERY_SWEEP_CRON", "*/5 * * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeApiSecretKey == "" {
		log.Println("Warning: STRIPE_API_SECRET_KEY is empty. Payment authorization will fail.")
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

// getEnvBool retrieves an environment variable as a bool or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
