// Package mail renders transactional emails and hands them to a delivery provider.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Template names an embedded HTML email template.
type Template string

const (
	// TemplateActivation corresponds to templates/activation.html
	TemplateActivation Template = "activation"
	// TemplateRestoration corresponds to templates/restoration.html
	TemplateRestoration Template = "restoration"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Data holds the values available inside every template.
type Data struct {
	Name string
	Link string
	Code string
}

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Render executes the named template with data.
func Render(name Template, data Data) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return body.String(), nil
}

// Compose renders a template into a Message.
func Compose(to, subject string, name Template, data Data) (Message, error) {
	html, err := Render(name, data)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, HTML: html}, nil
}

// ResendSender delivers messages through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a Resend-backed sender.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// Send delivers msg. The Resend client does not take a context, so ctx is only checked before the call.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them. It is used in development.
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("bytes", len(msg.HTML)).Msg("email not delivered (log sender)")
	return nil
}
