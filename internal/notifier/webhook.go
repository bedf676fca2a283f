package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/genspectrum/sourcewatch/internal/buildinfo"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/service"
	"github.com/genspectrum/sourcewatch/internal/utils"
)

// Notifier delivers a short text message to humans.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Config struct {
	WebhookURL string
	Username   string
	Channel    string
	Timeout    time.Duration
	Client     service.HTTPClient
}

// New returns a webhook notifier, or Nop when no webhook is configured.
func New(cfg Config) Notifier {
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return Nop{}
	}
	w, err := NewWebhook(cfg)
	if err != nil {
		return Nop{}
	}
	return w
}

// Webhook posts {"text": ...} to a Slack-compatible incoming webhook.
type Webhook struct {
	url      string
	username string
	channel  string
	client   service.HTTPClient
}

func NewWebhook(cfg Config) (*Webhook, error) {
	url := strings.TrimSpace(cfg.WebhookURL)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = service.NewHTTPClient(timeout)
	}

	return &Webhook{
		url:      url,
		username: strings.TrimSpace(cfg.Username),
		channel:  strings.TrimSpace(cfg.Channel),
		client:   client,
	}, nil
}

func (w *Webhook) payload(text string) map[string]string {
	msg := map[string]string{"text": text}
	if w.username != "" {
		msg["username"] = w.username
	}
	if w.channel != "" {
		msg["channel"] = w.channel
	}
	return msg
}

func (w *Webhook) Notify(ctx context.Context, text string) error {
	body, err := json.Marshal(w.payload(text))
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		utils.Try(resp.Body.Close)
		return fmt.Errorf("webhook %s: %s", resp.Status, utils.Truncate(strings.TrimSpace(string(snippet)), 200))
	}

	utils.DrainClose(resp.Body)
	logger.Debug("webhook: delivered %d bytes", len(body))
	return nil
}

// Nop is used when no webhook is configured; messages only reach the log.
type Nop struct{}

func (Nop) Notify(context.Context, string) error {
	logger.Debug("webhook: not configured, skipping notification")
	return nil
}
