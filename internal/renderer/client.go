package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
)

// RenderError переносит статус и сообщение сервиса генерации без
// переинтерпретации: вызывающая сторона отдаёт их наружу как есть.
type RenderError struct {
	StatusCode int
	Message    string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("renderer error %d: %s", e.StatusCode, e.Message)
}

// renderRequest - тело запроса к сервису генерации.
type renderRequest struct {
	OrderID     string  `json:"order_id"`
	CupType     string  `json:"cup_type"`
	ArtworkPath *string `json:"artwork_path,omitempty"`
}

// renderResponse описывает ответ сервиса генерации.
type renderResponse struct {
	OK      bool   `json:"ok"`
	PdfPath string `json:"pdf_path,omitempty"`
	Err     string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// Client интерфейс сервиса генерации PDF.
type Client interface {
	RenderOrderPDF(ctx context.Context, order *models.Order) (string, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient создаёт HTTP-клиент сервиса генерации.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// RenderOrderPDF запрашивает производственный PDF по заказу и возвращает
// ссылку на сохранённый артефакт.
func (c *HTTPClient) RenderOrderPDF(ctx context.Context, order *models.Order) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid renderer base url: %w", err)
	}
	u.Path = u.Path + "/api/render"

	body, err := json.Marshal(renderRequest{
		OrderID:     order.ID.String(),
		CupType:     string(order.CupType),
		ArtworkPath: order.ArtworkPath,
	})
	if err != nil {
		return "", fmt.Errorf("marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if resp.StatusCode == http.StatusOK {
			return "", fmt.Errorf("decode render response: %w", err)
		}
		// Нечитаемое тело ошибки: пробрасываем только HTTP-статус.
		return "", &RenderError{StatusCode: resp.StatusCode, Message: "render failed"}
	}

	if resp.StatusCode == http.StatusOK && payload.OK {
		return payload.PdfPath, nil
	}

	status := payload.Status
	if status == 0 {
		status = resp.StatusCode
	}
	message := payload.Err
	if message == "" {
		message = "render failed"
	}
	return "", &RenderError{StatusCode: status, Message: message}
}
