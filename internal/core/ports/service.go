package ports

import (
	"context"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
)

// AuthService owns the session lifecycle against the backend auth endpoints.
type AuthService interface {
	Login(ctx context.Context, store SessionStore, username, password string) (*domain.UserProfile, error)
	Logout(ctx context.Context, store SessionStore) error
	// CurrentUser returns the signed-in profile, or (nil, nil) when the
	// session is absent or rejected by the backend.
	CurrentUser(ctx context.Context, store SessionStore) (*domain.UserProfile, error)
}
