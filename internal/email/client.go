package email

import (
	"context"

	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/resend/resend-go/v2"
)

// Message is one outgoing email
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a message and returns the provider's message ID
type Sender interface {
	IsEnabled() bool
	Send(ctx context.Context, msg Message) (string, error)
}

// EmailClient sends through Resend. It is disabled when email.enabled is
// off or no API key is configured.
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

func NewEmailClient(cfg *config.Configuration) Sender {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &EmailClient{enabled: false}
	}

	return &EmailClient{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
	}
}

func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

func (c *EmailClient) Send(ctx context.Context, msg Message) (string, error) {
	if !c.enabled {
		return "", ierr.NewError("email client is disabled").
			Mark(ierr.ErrInvalidOperation)
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to send email").
			Mark(ierr.ErrHTTPClient)
	}
	return sent.Id, nil
}
