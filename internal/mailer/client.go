package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL - адрес API почтового транспорта.
const DefaultBaseURL = "https://api.resend.com"

// Message - письмо для отправки.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Client интерфейс почтового транспорта.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

type ResendClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewResendClient создаёт клиент почтового транспорта.
// Пустой baseURL означает боевой адрес API.
func NewResendClient(apiKey, baseURL string, timeout time.Duration) *ResendClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send отправляет письмо. Любой не-2xx ответ транспорта - ошибка доставки.
func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("transport status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
