package config_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 168*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 5, cfg.MaxLoginFailedCount)
	assert.Equal(t, 15*time.Minute, cfg.LoginFailedWaitingTime)
	assert.Equal(t, 3, cfg.MaxUnconfirmedEmailCount)
	assert.Equal(t, 24*time.Hour, cfg.UnconfirmedEmailWaitingTime)
	assert.Equal(t, 3, cfg.MaxResetPasswordCount)
	assert.Equal(t, 2*time.Hour, cfg.ResetPasswordValidTime)
	assert.Equal(t, time.Duration(0), cfg.ConfirmEmailValidTime)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("TOKEN_EXPIRY", "24h")
	t.Setenv("MAX_LOGIN_FAILED_COUNT", "10")
	t.Setenv("LOGIN_FAILED_WAITING_TIME", "30s")
	t.Setenv("CONFIRM_EMAIL_VALID_TIME", "72h")

	cfg := config.Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 10, cfg.MaxLoginFailedCount)
	assert.Equal(t, 30*time.Second, cfg.LoginFailedWaitingTime)
	assert.Equal(t, 72*time.Hour, cfg.ConfirmEmailValidTime)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_EXPIRY", "not-a-duration")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 168*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "account_db",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=account_db port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
