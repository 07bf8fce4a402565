package mail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

const (
	defaultAPIBase = "https://api.mailgun.net/v3"
	defaultTimeout = 10 * time.Second
)

// Config captures the transactional mail API settings.
type Config struct {
	APIBase string
	Domain  string
	APIKey  string
	Timeout time.Duration
}

// MailgunSender posts messages to a Mailgun-compatible HTTP API.
type MailgunSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewMailgunSender creates a sender for cfg.Domain. Defaults are applied for
// an empty API base or a non-positive timeout.
func NewMailgunSender(cfg Config) *MailgunSender {
	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MailgunSender{
		endpoint: strings.TrimRight(base, "/") + "/" + cfg.Domain + "/messages",
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts email as a form. Transport errors and non-2xx responses are
// returned as *domain.DispatchError.
func (s *MailgunSender) Send(ctx context.Context, email ports.Email) error {
	form := url.Values{
		"from":    {email.From},
		"to":      {email.To},
		"subject": {email.Subject},
		"text":    {email.Text},
		"html":    {email.HTML},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &domain.DispatchError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.DispatchError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.DispatchError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("mail api responded %s", resp.Status),
		}
	}
	return nil
}
