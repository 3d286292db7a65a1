package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

const (
	loginPath   = "/api/auth/token/"
	logoutPath  = "/api/auth/logout/"
	profilePath = "/api/auth/me/"
)

// AuthService drives the session lifecycle: credential issuance, profile
// lookup with a short-staleness cache, and teardown. Cookie mutation is
// delegated entirely to the injected SessionStore.
type AuthService struct {
	client ports.BackendClient
	cache  ports.ProfileCache
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(client ports.BackendClient, cache ports.ProfileCache) *AuthService {
	return &AuthService{client: client, cache: cache}
}

// Login exchanges credentials for a session pair, then verifies the account
// actually has dashboard access. An account that authenticates but lacks
// access gets its session torn down immediately: a valid-but-unauthorized
// session must never survive.
func (s *AuthService) Login(ctx context.Context, store ports.SessionStore, username, password string) (*domain.UserProfile, error) {
	resp, err := s.client.Do(ctx, store, ports.Request{
		Method:    http.MethodPost,
		Path:      loginPath,
		JSON:      map[string]string{"username": username, "password": password},
		Anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if detail := errorDetail(resp.Body); detail != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrBadCredentials, detail)
		}
		return nil, domain.ErrBadCredentials
	}

	var creds domain.Credentials
	if err := json.Unmarshal(resp.Body, &creds); err != nil || !creds.Complete() {
		return nil, errors.New("login response missing token pair")
	}
	if err := store.Save(ctx, creds); err != nil {
		return nil, err
	}

	profile, err := s.CurrentUser(ctx, store)
	if err != nil {
		return nil, err
	}
	if !domain.HasDashboardAccess(profile) {
		if err := s.Logout(ctx, store); err != nil {
			log.Printf("auth: teardown after unauthorized login failed: %v", err)
		}
		return nil, domain.ErrNoPermission
	}
	return profile, nil
}

// Logout terminates the backend session on a best-effort basis; local
// credentials are cleared regardless of what the backend says.
func (s *AuthService) Logout(ctx context.Context, store ports.SessionStore) error {
	creds, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if creds.Access != "" {
		header := http.Header{}
		header.Set("Authorization", "Bearer "+creds.Access)
		// Anonymous: a 401 here must not trigger a refresh of the very
		// session being terminated.
		_, err := s.client.Do(ctx, store, ports.Request{
			Method:    http.MethodPost,
			Path:      logoutPath,
			Header:    header,
			JSON:      map[string]string{"refresh": creds.Refresh},
			Anonymous: true,
		})
		if err != nil {
			log.Printf("auth: backend logout failed: %v", err)
		}
		if err := s.cache.Delete(ctx, creds.Access); err != nil {
			log.Printf("auth: dropping cached profile failed: %v", err)
		}
	}
	return store.Clear(ctx)
}

// CurrentUser resolves the signed-in principal via the backend's "who am I"
// endpoint, with a cached fast path. An absent or rejected session yields
// (nil, nil); not being signed in is not an error.
func (s *AuthService) CurrentUser(ctx context.Context, store ports.SessionStore) (*domain.UserProfile, error) {
	creds, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if creds.Access != "" {
		profile, err := s.cache.Get(ctx, creds.Access)
		if err != nil {
			log.Printf("auth: profile cache read failed: %v", err)
		} else if profile != nil {
			return profile, nil
		}
	}

	resp, err := s.client.Do(ctx, store, ports.Request{
		Method: http.MethodGet,
		Path:   profilePath,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, nil
		}
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(resp.Body, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	// The access token may have rotated during the call; cache under
	// whatever the store holds now.
	if creds, err = store.Load(ctx); err == nil && creds.Access != "" {
		if err := s.cache.Set(ctx, creds.Access, &profile); err != nil {
			log.Printf("auth: profile cache write failed: %v", err)
		}
	}
	return &profile, nil
}

func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
