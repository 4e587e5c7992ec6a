package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

const defaultSendTimeout = 15 * time.Second

var (
	ErrDisabled       = errors.New("mailer is disabled")
	ErrInvalidMessage = errors.New("invalid message")
)

type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, message Message) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	if config.SMTP.Host == "" {
		log.Warn().Msg("SMTP host is not configured, emails are disabled")
	}

	return &mailerImpl{config: config, otel: otel}
}

func (m *mailerImpl) Enabled() bool {
	return m.config.SMTP.Host != "" && m.config.SMTP.From != ""
}

// Send delivers message over SMTP. It returns when the server accepted the message, when ctx
// ends, or when the configured timeout elapses, whichever comes first.
func (m *mailerImpl) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !m.Enabled() {
		return ErrDisabled
	}

	msg, err := BuildMessage(m.config.SMTP.From, message)
	if err != nil {
		return err
	}

	dialer := gomail.NewDialer(m.config.SMTP.Host, m.config.SMTP.Port, m.config.SMTP.Username, m.config.SMTP.Password)
	dialer.SSL = m.config.SMTP.UseTLS

	done := make(chan error, 1)

	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	wait := time.Duration(m.config.SMTP.TimeoutSeconds) * time.Second
	if wait <= 0 {
		wait = defaultSendTimeout
	}

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < wait {
			wait = remaining
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case err = <-done:
		if err != nil {
			log.Error().Err(err).Strs("to", message.To).Msg("failed to send email")

			return fmt.Errorf("failed to send email: %w", err)
		}

		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return context.DeadlineExceeded
	}
}

// BuildMessage validates message and renders it as a MIME message.
func BuildMessage(from string, message Message) (*gomail.Message, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, fmt.Errorf("%w: from is required", ErrInvalidMessage)
	}

	to := cleanAddresses(message.To)
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}

	subject := strings.TrimSpace(message.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)

	for key, value := range message.Headers {
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		msg.SetHeader(key, value)
	}

	hasText := strings.TrimSpace(message.TextBody) != ""
	hasHTML := strings.TrimSpace(message.HTMLBody) != ""

	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", message.TextBody)
		msg.AddAlternative(constant.ContentTypeHTML, message.HTMLBody)
	case hasHTML:
		msg.SetBody(constant.ContentTypeHTML, message.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", message.TextBody)
	default:
		return nil, fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}

	return msg, nil
}

func cleanAddresses(in []string) []string {
	out := make([]string, 0, len(in))

	for _, address := range in {
		if address = strings.TrimSpace(address); address != "" {
			out = append(out, address)
		}
	}

	return out
}
