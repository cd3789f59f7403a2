package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL - время жизни токена загрузки по умолчанию.
const DefaultTTL = 15 * time.Minute

// Issue выпускает токен загрузки, привязанный к заказу.
// Формат: "<order_id>.<unix_expiry_seconds>.<base64url-подпись>".
// Подпись - HMAC-SHA256 над "<order_id>.<unix_expiry_seconds>",
// закодированная base64url без выравнивания. Токен нигде не
// сохраняется: он полностью восстановим из собственных байт и секрета.
func Issue(orderID, secret string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	expiresAt := time.Now().Add(ttl).Unix()
	payload := orderID + "." + strconv.FormatInt(expiresAt, 10)
	return payload + "." + sign(payload, secret)
}

// Verify проверяет токен загрузки относительно заказа.
// Все пути отказа возвращают false без различения причины:
// истёкший, подделанный и чужой токен снаружи неразличимы.
func Verify(tokenString, orderID, secret string) bool {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return false
	}

	// Привязка к ресурсу: токен действителен только для заказа,
	// под который был выпущен.
	if parts[0] != orderID {
		return false
	}

	expiresAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return false
	}
	if expiresAt < time.Now().Unix() {
		return false
	}

	// Подпись пересчитывается над исходным двухчастным payload
	// и сравнивается за постоянное время.
	expected := sign(parts[0]+"."+parts[1], secret)
	return hmac.Equal([]byte(expected), []byte(parts[2]))
}

// sign вычисляет подпись payload секретом процесса.
func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
