package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	// ErrEmptyRecipient возвращается, если у получателя нет номера телефона
	ErrEmptyRecipient = errors.New("sms: empty recipient phone")

	// ErrSendFailed возвращается при ошибке Twilio API
	ErrSendFailed = errors.New("sms: failed to send message")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Sender отправляет SMS через Twilio.
// Без учётных данных работает в режиме dry-run: сообщения только логируются.
type Sender struct {
	api  messageCreator
	from string
	log  Logger
}

// NewSender создает отправителя SMS
func NewSender(accountSID, authToken, from string, log Logger) *Sender {
	s := &Sender{from: from, log: log}

	if accountSID != "" && authToken != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		s.api = client.Api
	}

	return s
}

// Send отправляет сообщение body на номер to
func (s *Sender) Send(_ context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrEmptyRecipient
	}

	if s.api == nil {
		s.log.Warn("Send: twilio is not configured, dry-run to=%s body=%q", to, body)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, to, err)
	}

	if resp != nil && resp.Sid != nil {
		s.log.Info("Send: message sent to=%s sid=%s", to, *resp.Sid)
	}

	return nil
}
