package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestInternalTokenMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		header         string
		wantNextCalled bool
	}{
		{
			name:           "valid token",
			secret:         "internal-secret",
			header:         "internal-secret",
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			secret:         "internal-secret",
			header:         "",
			wantNextCalled: false,
		},
		{
			name:           "wrong token",
			secret:         "internal-secret",
			header:         "other-secret",
			wantNextCalled: false,
		},
		{
			name:           "secret not configured",
			secret:         "",
			header:         "anything",
			wantNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/internal/orders/abc/pdf", nil)
			if tt.header != "" {
				req.Header.Set(InternalTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			nextCalled := false
			next := func(c echo.Context) error {
				nextCalled = true
				return c.NoContent(http.StatusOK)
			}

			err := InternalTokenMiddleware(tt.secret)(next)(c)

			if nextCalled != tt.wantNextCalled {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNextCalled)
			}
			if !tt.wantNextCalled {
				he, ok := err.(*echo.HTTPError)
				if !ok {
					t.Fatalf("expected *echo.HTTPError, got %v", err)
				}
				if he.Code != http.StatusUnauthorized {
					t.Errorf("status = %d, want %d", he.Code, http.StatusUnauthorized)
				}
			}
		})
	}
}

func TestExtractUploadToken(t *testing.T) {
	e := echo.New()

	t.Run("from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/abc/artwork", nil)
		req.Header.Set(UploadTokenHeader, "header-token")
		c := e.NewContext(req, httptest.NewRecorder())

		if got := ExtractUploadToken(c); got != "header-token" {
			t.Errorf("ExtractUploadToken() = %q, want %q", got, "header-token")
		}
	})

	t.Run("from query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/abc/artwork?token=query-token", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		if got := ExtractUploadToken(c); got != "query-token" {
			t.Errorf("ExtractUploadToken() = %q, want %q", got, "query-token")
		}
	})

	t.Run("header wins over query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/abc/artwork?token=query-token", nil)
		req.Header.Set(UploadTokenHeader, "header-token")
		c := e.NewContext(req, httptest.NewRecorder())

		if got := ExtractUploadToken(c); got != "header-token" {
			t.Errorf("ExtractUploadToken() = %q, want %q", got, "header-token")
		}
	})
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"orderId":"abc"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
		want      bool
	}{
		{name: "valid signature", body: body, signature: valid, secret: secret, want: true},
		{name: "wrong secret", body: body, signature: valid, secret: "other", want: false},
		{name: "tampered body", body: []byte(`{"orderId":"xyz"}`), signature: valid, secret: secret, want: false},
		{name: "empty signature", body: body, signature: "", secret: secret, want: false},
		{name: "empty secret", body: body, signature: valid, secret: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyWebhookSignature(tt.body, tt.signature, tt.secret); got != tt.want {
				t.Errorf("VerifyWebhookSignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
