package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	netmail "net/mail"

	"lazada_callback/config"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// ErrEmailsDisabled is returned when SMTP_HOST or EMAILS_FROM_EMAIL is unset.
var ErrEmailsDisabled = errors.New("no provided configuration for email variables")

// MailDialer allows mocking gomail.Dialer
type MailDialer interface {
	DialAndSend(...*gomail.Message) error
}

// NewDialer constructs the real gomail dialer. SMTP_SSL selects implicit TLS,
// SMTP_TLS requires a verified STARTTLS upgrade. With neither flag set, port
// 465 keeps gomail's implicit TLS default.
func NewDialer(cfg *config.AppConfig) MailDialer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSSL || (!cfg.SMTPTLS && cfg.SMTPPort == 465)
	if cfg.SMTPTLS || d.SSL {
		d.TLSConfig = &tls.Config{
			ServerName: cfg.SMTPHost,
			MinVersion: tls.VersionTLS12,
		}
	}
	return d
}

// Sender relays single messages from the configured sender address.
type Sender struct {
	enabled  bool
	host     string
	port     int
	from     string
	fromName string
	dialer   MailDialer
	lg       zerolog.Logger
}

func NewSender(cfg *config.AppConfig, dialer MailDialer, lg zerolog.Logger) *Sender {
	return &Sender{
		enabled:  cfg.EmailsEnabled(),
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.EmailsFromEmail,
		fromName: cfg.EmailsFromName,
		dialer:   dialer,
		lg:       lg.With().Str("component", "smtp_sender").Logger(),
	}
}

// Send delivers body as text/plain with a preformatted HTML alternative.
// Nothing is dialed unless email sending is enabled.
func (s *Sender) Send(to, subject, body string) error {
	if !s.enabled {
		return ErrEmailsDisabled
	}
	if !validateEmail(to) {
		return fmt.Errorf("invalid email address: %s", to)
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", s.from, s.fromName)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/plain", body)
	mailer.AddAlternative("text/html", "<pre>"+html.EscapeString(body)+"</pre>")

	s.lg.Info().Str("host", s.host).Int("port", s.port).Str("to", to).Str("subject", subject).Msg("attempting smtp send")
	if err := s.dialer.DialAndSend(mailer); err != nil {
		s.lg.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return fmt.Errorf("smtp %s:%d: %w", s.host, s.port, err)
	}

	s.lg.Info().Str("to", to).Str("subject", subject).Msg("smtp send ok")
	return nil
}

func validateEmail(email string) bool {
	addr, err := netmail.ParseAddress(email)
	return err == nil && addr.Address == email
}
