package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("failed to marshal claims: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString([]byte("sig"))
}

func TestExpired_FutureToken(t *testing.T) {
	clock := NewClock()
	raw := makeToken(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})

	if clock.Expired(raw) {
		t.Error("token expiring in an hour reported as expired")
	}
}

func TestExpired_PastToken(t *testing.T) {
	clock := NewClock()
	raw := makeToken(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})

	if !clock.Expired(raw) {
		t.Error("token that expired an hour ago reported as valid")
	}
}

func TestExpired_ExactBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := NewClockAt(func() time.Time { return now })
	raw := makeToken(t, map[string]any{"exp": now.Unix()})

	if !clock.Expired(raw) {
		t.Error("token expiring exactly now must count as expired")
	}
}

func TestExpired_MalformedTokens(t *testing.T) {
	clock := NewClock()

	cases := map[string]string{
		"empty":             "",
		"not a token":       "garbage",
		"two segments":      "abc.def",
		"bad base64":        "abc.!!!not-base64!!!.ghi",
		"payload not json":  "e30." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".sig",
		"missing exp claim": makeToken(t, map[string]any{"sub": "user-1"}),
		"exp not numeric":   makeToken(t, map[string]any{"exp": "tomorrow"}),
	}

	for name, raw := range cases {
		if !clock.Expired(raw) {
			t.Errorf("%s: undecodable token must be treated as expired", name)
		}
	}
}
