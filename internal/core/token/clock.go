package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Clock judges bearer-token validity against wall-clock time. It reads the
// exp claim without verifying the signature; signature verification belongs
// to the backend that issued the token.
type Clock struct {
	now func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt builds a Clock with a fixed time source, for tests.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Expired reports whether the token's exp claim is in the past. Any decode
// failure (malformed segments, bad base64, non-JSON payload, missing or
// non-numeric exp) counts as expired. An undecodable token must never be
// treated as valid.
func (c *Clock) Expired(raw string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.After(c.now())
}
