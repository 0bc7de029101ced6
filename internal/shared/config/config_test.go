package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9090\"\n"), 0o600))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "https://api.mundipagg.com/core/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, 3, cfg.Gateway.RetryMax)
	assert.Equal(t, uint32(5), cfg.Gateway.FailureThreshold)
	assert.Equal(t, "pt-BR", cfg.Module.Locale)
	assert.True(t, cfg.Recurrence.PurchaseRecurrenceProductWithNormalProduct)
	assert.Equal(t, 120, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 587, cfg.Notifier.SMTPPort)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module:\n  locale: en\n"), 0o600))
	t.Setenv("MUNDIPAGG_SECRET_KEY", "sk_test_1")
	t.Setenv("MUNDIPAGG_JWT_SECRET", "jwt-secret")
	t.Setenv("MUNDIPAGG_MODULE_LOCALE", "pt-BR")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "sk_test_1", cfg.Gateway.SecretKey)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "pt-BR", cfg.Module.Locale)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "mundipagg", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=mundipagg sslmode=disable", cfg.DSN())
}
