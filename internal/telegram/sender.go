// Package telegram delivers replies through the Bot API. Delivery is
// fire-and-forget from the webhook's point of view: failures are logged by
// the caller, never surfaced to Telegram.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://api.telegram.org"
	defaultSendTimeout = 10 * time.Second
)

type Sender struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewSender builds a sender for the given bot token. baseURL is overridable
// for tests; empty means the public Bot API.
func NewSender(token, baseURL string) *Sender {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Sender{
		client:  &http.Client{Timeout: defaultSendTimeout},
		baseURL: baseURL,
		token:   token,
	}
}

// Send posts one sendMessage call. No delivery confirmation is consumed
// beyond the HTTP status.
func (s *Sender) Send(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal send payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}
