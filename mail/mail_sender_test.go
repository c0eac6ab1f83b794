package mail

import (
	"bytes"
	"errors"
	"testing"

	"lazada_callback/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type MockDialer struct {
	EmailsSent []*gomail.Message
	SendError  error
}

func (m *MockDialer) DialAndSend(msg ...*gomail.Message) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.EmailsSent = append(m.EmailsSent, msg...)
	return nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        587,
		SMTPTLS:         true,
		SMTPUser:        "mailer",
		SMTPPassword:    "pw",
		EmailsFromEmail: "noreply@example.com",
		EmailsFromName:  "Lazada Callback",
	}
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSend_Success(t *testing.T) {
	mockDialer := &MockDialer{}
	sender := NewSender(testConfig(), mockDialer, zerolog.Nop())

	err := sender.Send("ops@example.com", "Token", "{\n \"account\": \"seller\"\n}")
	require.NoError(t, err)
	require.Len(t, mockDialer.EmailsSent, 1)

	msg := mockDialer.EmailsSent[0]
	assert.Equal(t, []string{"ops@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Token"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{`"Lazada Callback" <noreply@example.com>`}, msg.GetHeader("From"))

	raw := render(t, msg)
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "account")
	assert.Contains(t, raw, "&#34;account&#34;")
}

func TestSend_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
	}{
		{"NoHost", func(c *config.AppConfig) { c.SMTPHost = "" }},
		{"NoFrom", func(c *config.AppConfig) { c.EmailsFromEmail = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(cfg)
			mockDialer := &MockDialer{}

			err := NewSender(cfg, mockDialer, zerolog.Nop()).Send("ops@example.com", "s", "b")
			assert.ErrorIs(t, err, ErrEmailsDisabled)
			assert.Empty(t, mockDialer.EmailsSent)
		})
	}
}

func TestSend_InvalidEmail(t *testing.T) {
	mockDialer := &MockDialer{}

	err := NewSender(testConfig(), mockDialer, zerolog.Nop()).Send("invalid-email", "s", "b")
	require.Error(t, err)
	assert.Equal(t, "invalid email address: invalid-email", err.Error())
	assert.Empty(t, mockDialer.EmailsSent)
}

func TestSend_SendError(t *testing.T) {
	mockDialer := &MockDialer{SendError: errors.New("SMTP connection failed")}

	err := NewSender(testConfig(), mockDialer, zerolog.Nop()).Send("ops@example.com", "s", "b")
	require.Error(t, err)
	assert.Equal(t, "smtp smtp.example.com:587: SMTP connection failed", err.Error())
	assert.ErrorIs(t, err, mockDialer.SendError)
}

func TestNewDialer(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		tls     bool
		ssl     bool
		wantSSL bool
		wantTLS bool
	}{
		{"StartTLS", 587, true, false, false, true},
		{"ImplicitTLS", 587, false, true, true, true},
		{"Plain", 587, false, false, false, false},
		{"Port465DefaultsToImplicitTLS", 465, false, false, true, true},
		{"Port465WithStartTLS", 465, true, false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.SMTPPort = tc.port
			cfg.SMTPTLS = tc.tls
			cfg.SMTPSSL = tc.ssl

			d, ok := NewDialer(cfg).(*gomail.Dialer)
			require.True(t, ok)
			assert.Equal(t, "smtp.example.com", d.Host)
			assert.Equal(t, tc.port, d.Port)
			assert.Equal(t, "mailer", d.Username)
			assert.Equal(t, tc.wantSSL, d.SSL)
			assert.Equal(t, tc.wantTLS, d.TLSConfig != nil)
			if tc.wantTLS {
				assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ops@example.com", true},
		{"first.last@sub.example.co", true},
		{"invalid-email", false},
		{"Ops <ops@example.com>", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.valid, validateEmail(tc.email))
		})
	}
}
