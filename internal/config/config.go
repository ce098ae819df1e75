package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret   string
	TokenExpiry time.Duration

	// Sender identity and outbound SMTP
	AppName       string
	EmailFrom     string
	EmailFromName string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string

	// URLs embedded in outbound emails
	ConfirmEmailURL  string
	ResetPasswordURL string

	// Account lifecycle rate-limit windows
	MaxLoginFailedCount         int
	LoginFailedWaitingTime      time.Duration
	MaxUnconfirmedEmailCount    int
	UnconfirmedEmailWaitingTime time.Duration
	MaxResetPasswordCount       int
	ResetPasswordWaitingTime    time.Duration
	ResetPasswordValidTime      time.Duration

	// ConfirmEmailValidTime bounds how long a confirmation code stays usable.
	// Zero disables the expiry check.
	ConfirmEmailValidTime time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "account_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: parseDuration(getEnv("TOKEN_EXPIRY", "168h"), 168*time.Hour),

		AppName:       getEnv("APP_NAME", "Account Service"),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@example.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Account Service"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),

		ConfirmEmailURL:  getEnv("CONFIRM_EMAIL_URL", "http://localhost:8080/confirm-email"),
		ResetPasswordURL: getEnv("RESET_PASSWORD_URL", "http://localhost:8080/reset-password"),

		MaxLoginFailedCount:         parseInt(getEnv("MAX_LOGIN_FAILED_COUNT", "5"), 5),
		LoginFailedWaitingTime:      parseDuration(getEnv("LOGIN_FAILED_WAITING_TIME", "15m"), 15*time.Minute),
		MaxUnconfirmedEmailCount:    parseInt(getEnv("MAX_UNCONFIRMED_EMAIL_COUNT", "3"), 3),
		UnconfirmedEmailWaitingTime: parseDuration(getEnv("UNCONFIRMED_EMAIL_WAITING_TIME", "24h"), 24*time.Hour),
		MaxResetPasswordCount:       parseInt(getEnv("MAX_RESET_PASSWORD_COUNT", "3"), 3),
		ResetPasswordWaitingTime:    parseDuration(getEnv("RESET_PASSWORD_WAITING_TIME", "15m"), 15*time.Minute),
		ResetPasswordValidTime:      parseDuration(getEnv("RESET_PASSWORD_VALID_TIME", "2h"), 2*time.Hour),
		ConfirmEmailValidTime:       parseDuration(getEnv("CONFIRM_EMAIL_VALID_TIME", "0"), 0),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "0" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
