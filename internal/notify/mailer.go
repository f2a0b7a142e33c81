// Package notify delivers validation e-mails.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"text/template"

	"github.com/go-resty/resty/v2"

	"github.com/designemotion/transcript/internal/assets"
	"github.com/designemotion/transcript/internal/config"
)

// Mail is the request body accepted by the mail API.
type Mail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// HTTPMailer posts mails to a transactional mail API.
type HTTPMailer struct {
	client        *resty.Client
	endpoint      string
	sender        string
	subject       string
	validationURL string
	template      *template.Template
}

func NewHTTPMailer(cfg config.MailConfig) (*HTTPMailer, error) {
	tmpl, err := assets.ParseValidationMailTemplate(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseValidationMailTemplate > %w", err)
	}

	client := resty.New()
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &HTTPMailer{
		client:        client,
		endpoint:      cfg.Endpoint,
		sender:        cfg.Sender,
		subject:       cfg.Subject,
		validationURL: cfg.ValidationURL,
		template:      tmpl,
	}, nil
}

// SendValidation mails the validation link for validationKey to email.
func (m *HTTPMailer) SendValidation(ctx context.Context, email, tool, validationKey string) error {
	body, err := renderValidation(m.template, m.validationURL, email, tool, validationKey)
	if err != nil {
		return err
	}

	res, err := m.client.R().
		SetContext(ctx).
		SetBody(Mail{
			From:    m.sender,
			To:      []string{email},
			Subject: m.subject,
			Text:    body,
		}).
		Post(m.endpoint)
	if err != nil {
		return fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	slog.Default().Info("validation mail sent", "email", email, "tool", tool)
	return nil
}

// LogMailer writes the validation link to the log instead of sending it.
// It is used when no mail endpoint is configured.
type LogMailer struct {
	validationURL string
	template      *template.Template
}

func NewLogMailer(cfg config.MailConfig) (*LogMailer, error) {
	tmpl, err := assets.ParseValidationMailTemplate(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseValidationMailTemplate > %w", err)
	}
	return &LogMailer{validationURL: cfg.ValidationURL, template: tmpl}, nil
}

func (m *LogMailer) SendValidation(ctx context.Context, email, tool, validationKey string) error {
	body, err := renderValidation(m.template, m.validationURL, email, tool, validationKey)
	if err != nil {
		return err
	}
	slog.Default().Info("validation mail not sent, no mail endpoint configured",
		"email", email,
		"tool", tool,
		"body", body,
	)
	return nil
}

func renderValidation(tmpl *template.Template, validationURL, email, tool, validationKey string) (string, error) {
	var buf bytes.Buffer
	if err := assets.WriteValidationMail(&buf, tmpl, assets.ValidationMail{
		Email:         email,
		Tool:          tool,
		ValidationURL: fmt.Sprintf(validationURL, validationKey),
	}); err != nil {
		return "", fmt.Errorf("assets.WriteValidationMail > %w", err)
	}
	return buf.String(), nil
}
