package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// InternalTokenHeader - заголовок со служебным токеном для
	// межсервисных вызовов.
	InternalTokenHeader = "x-hotzy-token"
	// UploadTokenHeader - заголовок с токеном загрузки покупателя.
	UploadTokenHeader = "X-Upload-Token"
	// WebhookSignatureHeader - заголовок с подписью тела вебхука.
	WebhookSignatureHeader = "X-Webhook-Signature"
)

// InternalTokenMiddleware создаёт middleware для проверки служебного токена.
// Запрос отклоняется, если секрет не сконфигурирован, заголовок отсутствует
// или значения не совпадают - ответ во всех случаях одинаковый.
func InternalTokenMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			presented := c.Request().Header.Get(InternalTokenHeader)
			if presented == "" || presented != secret {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			return next(c)
		}
	}
}

// ExtractUploadToken извлекает токен загрузки из заголовка или query-параметра.
func ExtractUploadToken(c echo.Context) string {
	if tok := c.Request().Header.Get(UploadTokenHeader); tok != "" {
		return tok
	}
	return c.QueryParam("token")
}

// VerifyWebhookSignature проверяет hex-подпись HMAC-SHA256 над телом вебхука.
// Сравнение выполняется за постоянное время.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
