package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"SECRET_KEY":        "s3cret",
		"SERVER_HOST":       "0.0.0.0",
		"SERVER_PORT":       "8000",
		"PROJECT_NAME":      "lazada-callback",
		"SMTP_TLS":          "true",
		"SMTP_PORT":         "587",
		"EMAIL_TO":          "ops@example.com",
		"LAZADA_ROOT_URL":   "https://auth.lazada.com/rest",
		"LAZADA_APP_KEY":    "123456",
		"LAZADA_APP_SECRET": "app-secret",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.True(t, cfg.SMTPTLS)
	assert.False(t, cfg.SMTPSSL)
	assert.Equal(t, "http://localhost:8000/callback-url", cfg.LazadaCallbackURI)
	assert.Equal(t, "https://auth.lazada.com/oauth/authorize", cfg.LazadaAuthURL)
	assert.Equal(t, 30*time.Second, cfg.LazadaTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EmailsEnabled())
	assert.False(t, cfg.SMSEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"SecretKey", "SECRET_KEY"},
		{"AppKey", "LAZADA_APP_KEY"},
		{"EmailTo", "EMAIL_TO"},
		{"SMTPPort", "SMTP_PORT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.unset, "")
			os.Unsetenv(tc.unset)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.unset)
		})
	}
}

func TestLoad_InvalidFormats(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"EmailTo", "EMAIL_TO", "not-an-email"},
		{"FromEmail", "EMAILS_FROM_EMAIL", "nope"},
		{"RootURL", "LAZADA_ROOT_URL", "not a url"},
		{"AlertPhone", "ALERT_PHONE", "0123"},
		{"ServerPort", "SERVER_PORT", "70000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_TLSAndSSLExclusive(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_SSL", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestEmailsEnabled(t *testing.T) {
	tests := []struct {
		name string
		host string
		from string
		want bool
	}{
		{"Both", "smtp.example.com", "noreply@example.com", true},
		{"NoHost", "", "noreply@example.com", false},
		{"NoFrom", "smtp.example.com", "", false},
		{"Neither", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &AppConfig{SMTPHost: tc.host, EmailsFromEmail: tc.from}
			assert.Equal(t, tc.want, cfg.EmailsEnabled())
		})
	}
}

func TestSMSEnabled(t *testing.T) {
	cfg := &AppConfig{TwilioSID: "AC1", TwilioAuthToken: "tok", TwilioPhone: "+15550000000"}
	assert.False(t, cfg.SMSEnabled())

	cfg.AlertPhone = "+15551111111"
	assert.True(t, cfg.SMSEnabled())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.env")
	require.NoError(t, os.WriteFile(path, []byte("LAZADA_TEST_ONLY_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LAZADA_TEST_ONLY_VAR") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("LAZADA_TEST_ONLY_VAR"))

	err := LoadEnvFile(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
}
