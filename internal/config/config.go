package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig holds the outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// RazorpayConfig holds the payment gateway credentials
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
}

// OpenAIConfig holds the menu-suggestion helper settings
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	ChatModel string
}

// Config is the full application configuration, read once at boot
type Config struct {
	Port string

	JWTSecret string
	JWTTTL    time.Duration
	OTPLength int
	OTPTTL    time.Duration
	OTPSweep  time.Duration // how often the retention job runs
	OTPRetain time.Duration // how long expired rows are kept for audit
	SMTP      SMTPConfig
	Razorpay  RazorpayConfig
	OpenAI    OpenAIConfig

	// Monthly admin subscription fee in rupees
	SubscriptionFee float64

	// Emails exempt from the subscription gate
	PrivilegedAdminEmails []string

	UseMemoryStore bool
}

// Load reads configuration from the environment with sane defaults
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		OTPLength: getEnvInt("OTP_LENGTH", 6),
		OTPTTL:    time.Duration(getEnvInt("OTP_TTL_SECONDS", 600)) * time.Second,
		OTPSweep:  time.Duration(getEnvInt("OTP_SWEEP_MINUTES", 60)) * time.Minute,
		OTPRetain: time.Duration(getEnvInt("OTP_RETAIN_HOURS", 24)) * time.Hour,

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "FoodDash <no-reply@fooddash.app>"),
		},

		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Currency:  getEnv("RAZORPAY_CURRENCY", "INR"),
		},

		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			BaseURL:   getEnv("OPENAI_BASE_URL", ""),
			ChatModel: getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		},

		SubscriptionFee:       getEnvFloat("ADMIN_SUBSCRIPTION_FEE", 499.00),
		PrivilegedAdminEmails: splitList(getEnv("PRIVILEGED_ADMIN_EMAILS", "")),

		UseMemoryStore: getEnv("USE_MEMORY_STORE", "") == "true",
	}
}

// IsPrivilegedAdmin reports whether an email bypasses the subscription gate
func (c *Config) IsPrivilegedAdmin(email string) bool {
	for _, e := range c.PrivilegedAdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
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

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
