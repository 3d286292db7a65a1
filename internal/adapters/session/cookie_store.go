package session

import (
	"context"
	"net/http"
	"time"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

const (
	// AccessCookie holds the short-lived bearer credential.
	AccessCookie = "access"
	// RefreshCookie holds the credential used to obtain a new pair.
	RefreshCookie = "refresh"
)

// CookieStore implements ports.SessionStore over the cookie exchange of one
// request/response pair. Writes within the request are visible to later
// reads, so a refresh mid-request updates what the rest of the request sees.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	current *domain.Credentials
}

var _ ports.SessionStore = (*CookieStore)(nil)

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure}
}

func (s *CookieStore) Load(ctx context.Context) (domain.Credentials, error) {
	if s.current != nil {
		return *s.current, nil
	}
	var creds domain.Credentials
	if c, err := s.r.Cookie(AccessCookie); err == nil {
		creds.Access = c.Value
	}
	if c, err := s.r.Cookie(RefreshCookie); err == nil {
		creds.Refresh = c.Value
	}
	return creds, nil
}

func (s *CookieStore) Save(ctx context.Context, creds domain.Credentials) error {
	http.SetCookie(s.w, s.cookie(AccessCookie, creds.Access))
	http.SetCookie(s.w, s.cookie(RefreshCookie, creds.Refresh))
	s.current = &creds
	return nil
}

func (s *CookieStore) Clear(ctx context.Context) error {
	http.SetCookie(s.w, s.expired(AccessCookie))
	http.SetCookie(s.w, s.expired(RefreshCookie))
	s.current = &domain.Credentials{}
	return nil
}

func (s *CookieStore) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expired produces a cookie with an already-past expiry, which is how
// browsers are told to drop it.
func (s *CookieStore) expired(name string) *http.Cookie {
	c := s.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
