package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	SessionSecret string
	SessionTTL    time.Duration

	OTPTTL time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	// TeamChannel selects the ticket relay backend: "webhook" or "sns".
	TeamChannel string
	WebhookURL  string

	SNSTopicARN    string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	// CodeStore selects the pending-code store backend: "memory" or "dynamo".
	CodeStore               string
	DynamoTablePendingCodes string

	ChatAPIURL      string
	ChatAPIKey      string
	ChatModel       string
	ChatMaxTokens   int
	ChatTemperature float64

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		OTPTTL: getEnvDuration("OTP_TTL", 10*time.Minute),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX_REQUESTS", 2),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 30*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@synapsehub.eu"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Synapse Support"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		TeamChannel: getEnv("TEAM_CHANNEL", "webhook"),
		WebhookURL:  getEnv("SUPPORT_WEBHOOK_URL", ""),

		SNSTopicARN:    getEnv("SNS_TOPIC_ARN", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		CodeStore:               getEnv("CODE_STORE", "memory"),
		DynamoTablePendingCodes: getEnv("DYNAMO_TABLE_PENDING_CODES", "pending_codes"),

		ChatAPIURL:      getEnv("CHAT_API_URL", ""),
		ChatAPIKey:      getEnv("CHAT_API_KEY", ""),
		ChatModel:       getEnv("CHAT_MODEL", "deepseek-chat"),
		ChatMaxTokens:   getEnvInt("CHAT_MAX_TOKENS", 1000),
		ChatTemperature: getEnvFloat("CHAT_TEMPERATURE", 0.7),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
