// Package mailer delivers transactional email through an HTTP mail API that
// accepts {from, to, subject, html, text} JSON with a bearer key.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"funil.app/crm/core/config"
)

// APIError is a non-2xx answer from the mail API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mail api returned %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	from       string
}

// New returns nil when mail delivery is not configured; callers treat a nil
// client as "delivery disabled".
func New(cfg config.MailConfig, httpClient *http.Client) *Client {
	if !cfg.Enabled() {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
	}
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// SendInvite renders and sends the invitation email.
func (c *Client) SendInvite(ctx context.Context, inv Invite) error {
	html, text, err := renderInvite(inv)
	if err != nil {
		return err
	}
	return c.send(ctx, message{
		From:    c.from,
		To:      []string{inv.To},
		Subject: inviteSubject(inv),
		HTML:    html,
		Text:    text,
	})
}

func (c *Client) send(ctx context.Context, msg message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	slog.InfoContext(ctx, "mail sent", "subject", msg.Subject)
	return nil
}
