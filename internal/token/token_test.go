package token

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()

	tok := Issue(orderID, secret, time.Hour)

	if !Verify(tok, orderID, secret) {
		t.Fatal("freshly issued token must verify for its own order")
	}
}

func TestIssueFormat(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()

	tok := Issue(orderID, secret, time.Hour)

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	if parts[0] != orderID {
		t.Errorf("first part = %q, want order id %q", parts[0], orderID)
	}

	expiresAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		t.Fatalf("second part is not a number: %v", err)
	}
	now := time.Now().Unix()
	if expiresAt < now || expiresAt > now+3700 {
		t.Errorf("expiry %d is outside the expected window around now+1h", expiresAt)
	}

	// base64url без выравнивания не содержит '=', '+', '/'
	if strings.ContainsAny(parts[2], "=+/") {
		t.Errorf("signature %q is not padding-free base64url", parts[2])
	}
}

func TestVerifyWrongOrder(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()
	otherID := uuid.New().String()

	tok := Issue(orderID, secret, time.Hour)

	if Verify(tok, otherID, secret) {
		t.Fatal("token must not verify for a different order id")
	}
}

func TestVerifyExpired(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()

	// Просроченный токен собирается вручную: Issue с ttl <= 0
	// подставляет TTL по умолчанию.
	expired := strconv.FormatInt(time.Now().Add(-time.Minute).Unix(), 10)
	payload := orderID + "." + expired
	tok := payload + "." + sign(payload, secret)

	if Verify(tok, orderID, secret) {
		t.Fatal("expired token must not verify even with a valid signature")
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()

	tok := Issue(orderID, secret, time.Hour)

	// Порча одного символа сегмента подписи инвалидирует токен.
	last := tok[len(tok)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := tok[:len(tok)-1] + string(replacement)

	if Verify(tampered, orderID, secret) {
		t.Fatal("token with a mutated signature must not verify")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	orderID := uuid.New().String()

	tok := Issue(orderID, "secret-one", time.Hour)

	if Verify(tok, orderID, "secret-two") {
		t.Fatal("token must not verify under a different secret")
	}
}

func TestVerifyMalformed(t *testing.T) {
	secret := "test-secret"
	orderID := uuid.New().String()
	valid := Issue(orderID, secret, time.Hour)
	parts := strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "one part", token: orderID},
		{name: "two parts", token: parts[0] + "." + parts[1]},
		{name: "four parts", token: valid + ".extra"},
		{name: "non-numeric expiry", token: parts[0] + ".soon." + parts[2]},
		{name: "empty signature", token: parts[0] + "." + parts[1] + "."},
		{name: "garbage", token: "not-a-token-at-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.token, orderID, secret) {
				t.Errorf("Verify(%q) = true, want false", tt.token)
			}
		})
	}
}
