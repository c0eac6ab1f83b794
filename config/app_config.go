package config

import (
	"net"
	"strconv"
	"time"
)

// AppConfig is the flat, read-only service configuration. It is built once at
// startup by Load and passed to every component that needs it.
type AppConfig struct {
	SecretKey   string `env:"SECRET_KEY,required,notEmpty"`
	ServerHost  string `env:"SERVER_HOST,required,notEmpty"`
	ServerPort  int    `env:"SERVER_PORT,required" validate:"min=1,max=65535"`
	ProjectName string `env:"PROJECT_NAME,required,notEmpty"`
	APIPrefix   string `env:"API_V1_STR" envDefault:"/api/v1" validate:"startswith=/"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Email
	SMTPTLS         bool   `env:"SMTP_TLS,required"`
	SMTPSSL         bool   `env:"SMTP_SSL" envDefault:"false"`
	SMTPPort        int    `env:"SMTP_PORT,required" validate:"min=1,max=65535"`
	SMTPHost        string `env:"SMTP_HOST" validate:"omitempty,hostname|ip"`
	SMTPUser        string `env:"SMTP_USER"`
	SMTPPassword    string `env:"SMTP_PASSWORD"`
	EmailsFromEmail string `env:"EMAILS_FROM_EMAIL" validate:"omitempty,email"`
	EmailsFromName  string `env:"EMAILS_FROM_NAME"`
	EmailTo         string `env:"EMAIL_TO,required,notEmpty" validate:"email"`

	// Lazada
	LazadaRootURL     string        `env:"LAZADA_ROOT_URL,required,notEmpty" validate:"url"`
	LazadaAppKey      string        `env:"LAZADA_APP_KEY,required,notEmpty"`
	LazadaAppSecret   string        `env:"LAZADA_APP_SECRET,required,notEmpty"`
	LazadaCallbackURI string        `env:"LAZADA_CALLBACK_URI" envDefault:"http://localhost:8000/callback-url" validate:"url"`
	LazadaAuthURL     string        `env:"LAZADA_AUTH_URL" envDefault:"https://auth.lazada.com/oauth/authorize" validate:"url"`
	LazadaTimeout     time.Duration `env:"LAZADA_TIMEOUT" envDefault:"30s"`

	// Optional operator SMS alert
	TwilioSID       string `env:"TWILIO_SID"`
	TwilioAuthToken string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhone     string `env:"TWILIO_PHONE" validate:"omitempty,e164"`
	AlertPhone      string `env:"ALERT_PHONE" validate:"omitempty,e164"`
}

// EmailsEnabled reports whether enough SMTP settings exist to send mail.
func (c *AppConfig) EmailsEnabled() bool {
	return c.SMTPHost != "" && c.EmailsFromEmail != ""
}

// SMSEnabled reports whether the Twilio alert channel is fully configured.
func (c *AppConfig) SMSEnabled() bool {
	return c.TwilioSID != "" && c.TwilioAuthToken != "" && c.TwilioPhone != "" && c.AlertPhone != ""
}

// Addr is the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}
