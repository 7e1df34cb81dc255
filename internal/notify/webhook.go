package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"memwatch/internal/logging"
)

// DefaultWebhookTimeout bounds a webhook request when the caller's context
// has no deadline of its own.
const DefaultWebhookTimeout = 10 * time.Second

// webhookPayload carries the message under both "text" (Slack) and
// "content" (Discord).
type webhookPayload struct {
	Text    string `json:"text"`
	Content string `json:"content"`
}

// Webhook is a Notifier that POSTs JSON messages to a URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook notifier. A nil client gets a default one
// with DefaultWebhookTimeout.
func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: DefaultWebhookTimeout}
	}
	return &Webhook{url: url, client: client}
}

// NotifyMemory posts a memory alert.
func (w *Webhook) NotifyMemory(ctx context.Context, total, used uint64) error {
	return w.post(ctx, MemoryText(total, used))
}

// NotifySelfError posts a self-error message.
func (w *Webhook) NotifySelfError(ctx context.Context, message string) error {
	return w.post(ctx, SelfErrorText(message))
}

func (w *Webhook) post(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{Text: text, Content: text})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Debug("Failed to close webhook response body: %v", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
