package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lazada_callback/lazada"
	"lazada_callback/metrics"

	"github.com/rs/zerolog"
)

const (
	EmailSubject   = "Lazada Token Created via Lazada API"
	SuccessMessage = "Email Sent Successfully"
)

// TokenCreator exchanges an authorization code with the provider.
type TokenCreator interface {
	CreateToken(ctx context.Context, code string) (*lazada.Response, error)
}

type Notifier interface {
	Send(to, subject, body string) error
}

// Alerter sends a short notice that must never include token secrets.
type Alerter interface {
	Alert(message string) error
}

// ExchangeError wraps any failure of the token exchange itself.
type ExchangeError struct {
	Err error
}

func (e *ExchangeError) Error() string { return e.Err.Error() }
func (e *ExchangeError) Unwrap() error { return e.Err }

// NotifyError wraps a failure to email a token that was already created.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string { return "Failed to send email: " + e.Err.Error() }
func (e *NotifyError) Unwrap() error { return e.Err }

type Deps struct {
	Tokens    TokenCreator
	Notifier  Notifier
	Alerter   Alerter // optional
	Recipient string
	Logger    zerolog.Logger
}

type Service struct {
	tokens    TokenCreator
	notifier  Notifier
	alerter   Alerter
	recipient string
	lg        zerolog.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		tokens:    d.Tokens,
		notifier:  d.Notifier,
		alerter:   d.Alerter,
		recipient: d.Recipient,
		lg:        d.Logger.With().Str("component", "token_exchange").Logger(),
	}
}

// Run exchanges code for a token and emails the payload to the operator.
// Each step is attempted once; nothing is retried.
func (s *Service) Run(ctx context.Context, code string) error {
	start := time.Now()
	resp, err := s.tokens.CreateToken(ctx, code)
	if err != nil {
		metrics.RecordTokenExchange(metrics.ResultFailure, time.Since(start))
		s.lg.Warn().Err(err).Msg("token exchange failed")
		return &ExchangeError{Err: err}
	}
	metrics.RecordTokenExchange(metrics.ResultSuccess, time.Since(start))
	s.lg.Info().Str("type", resp.Type).Str("request_id", resp.RequestID).RawJSON("body", resp.Body).Msg("token created")

	body, err := PrettyJSON(resp.Body)
	if err != nil {
		return &ExchangeError{Err: err}
	}

	if err := s.notifier.Send(s.recipient, EmailSubject, body); err != nil {
		metrics.RecordNotification(metrics.ChannelEmail, metrics.ResultFailure)
		return &NotifyError{Err: err}
	}
	metrics.RecordNotification(metrics.ChannelEmail, metrics.ResultSuccess)

	s.alert(resp)
	return nil
}

// alert is best effort: the email already went out, so a failed SMS only logs.
func (s *Service) alert(resp *lazada.Response) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(alertMessage(resp, s.recipient)); err != nil {
		metrics.RecordNotification(metrics.ChannelSMS, metrics.ResultFailure)
		s.lg.Warn().Err(err).Msg("operator alert failed")
		return
	}
	metrics.RecordNotification(metrics.ChannelSMS, metrics.ResultSuccess)
}

func alertMessage(resp *lazada.Response, recipient string) string {
	tok, err := resp.Token()
	if err != nil {
		return fmt.Sprintf("Lazada token created. Details emailed to %s.", recipient)
	}

	account, _ := tok.Extra("account").(string)
	country, _ := tok.Extra("country").(string)
	msg := "Lazada token created"
	if account != "" {
		msg += " for " + account
		if country != "" {
			msg += " (" + country + ")"
		}
	}
	if !tok.Expiry.IsZero() {
		msg += ", expires " + tok.Expiry.UTC().Format(time.RFC3339)
	}
	return msg + ". Details emailed to " + recipient + "."
}

// PrettyJSON re-indents raw JSON with a single space, keeping the provider's
// key order and leaving non-ASCII text as is.
func PrettyJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", " "); err != nil {
		return "", fmt.Errorf("format token payload: %w", err)
	}
	return buf.String(), nil
}
