package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lifeguard/config"
	"lifeguard/infras/otel"
	"lifeguard/shared/constant"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

const requestTimeout = 15 * time.Second

// Email is a single outgoing message.
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) (id string, err error)
}

type resendMailer struct {
	config *config.Config
	otel   otel.Otel
	client *resend.Client
}

// New returns a Mailer backed by Resend.
func New(config *config.Config, otel otel.Otel) Mailer {
	return NewWithClient(config, otel, &http.Client{Timeout: requestTimeout})
}

func NewWithClient(config *config.Config, otel otel.Otel, httpClient *http.Client) Mailer {
	client := resend.NewCustomClient(httpClient, config.Mail.APIKey)

	if config.Mail.BaseURL != "" {
		baseURL, err := url.Parse(config.Mail.BaseURL)
		if err != nil {
			log.Error().Err(err).Str("base_url", config.Mail.BaseURL).Msg("invalid mail base URL, using the Resend default")
		} else {
			client.BaseURL = baseURL
		}
	}

	return &resendMailer{
		config: config,
		otel:   otel,
		client: client,
	}
}

func (m *resendMailer) Send(ctx context.Context, email Email) (id string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("mail.subject", email.Subject)

	if m.config.Mail.APIKey == "" {
		log.Warn().Strs("to", email.To).Str("subject", email.Subject).Msg("mail API key not configured, skipping delivery")

		return constant.Empty, nil
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.config.Mail.From,
		ReplyTo: m.config.Mail.ReplyTo,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		log.Error().Err(err).Strs("to", email.To).Msg("mail provider rejected email")

		return constant.Empty, fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Strs("to", email.To).Str("id", sent.Id).Msg("email sent")

	return sent.Id, nil
}
