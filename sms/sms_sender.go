package sms

import (
	"errors"
	"fmt"
	"strings"

	"lazada_callback/config"

	"github.com/rs/zerolog"
	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMS represents a single SMS message
type SMS struct {
	Recipient string
	Message   string
}

// MessageCreator is the slice of the Twilio REST API used here; it lets tests
// replace the network call.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioAlerter sends short operator notices through Twilio.
type TwilioAlerter struct {
	api  MessageCreator
	from string
	to   string
	lg   zerolog.Logger
}

// NewTwilioAlerter builds an alerter from TWILIO_* settings and ALERT_PHONE.
func NewTwilioAlerter(cfg *config.AppConfig, lg zerolog.Logger) *TwilioAlerter {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioSID,
		Password: cfg.TwilioAuthToken,
	})
	return NewAlerter(client.Api, cfg.TwilioPhone, cfg.AlertPhone, lg)
}

func NewAlerter(api MessageCreator, from, to string, lg zerolog.Logger) *TwilioAlerter {
	return &TwilioAlerter{
		api:  api,
		from: from,
		to:   to,
		lg:   lg.With().Str("component", "twilio_alerter").Logger(),
	}
}

// Alert sends message to the configured operator phone.
func (a *TwilioAlerter) Alert(message string) error {
	return a.Send(&SMS{Recipient: a.to, Message: message})
}

// Send sends SMS using Twilio's API
func (a *TwilioAlerter) Send(sms *SMS) error {
	if !ValidatePhone(sms.Recipient) {
		return fmt.Errorf("invalid phone number: %s", maskPhone(sms.Recipient))
	}
	if strings.TrimSpace(sms.Message) == "" {
		return errors.New("message cannot be empty")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(sms.Recipient)
	params.SetFrom(a.from)
	params.SetBody(sms.Message)

	resp, err := a.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", maskPhone(sms.Recipient), err)
	}

	a.lg.Info().Str("to", maskPhone(sms.Recipient)).Str("sid", deref(resp.Sid)).Str("status", deref(resp.Status)).Msg("twilio sms sent")
	return nil
}

// ValidatePhone checks if the phone number is in a valid E.164 format
func ValidatePhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	if !strings.HasPrefix(phone, "+") {
		return false
	}
	for _, r := range phone[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// maskPhone obfuscates the phone number for logging
func maskPhone(phone string) string {
	if len(phone) > 4 {
		return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
	}
	return "****"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
