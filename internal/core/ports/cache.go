package ports

import (
	"context"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
)

// ProfileCache holds the per-session user profile for a short staleness
// window. Entries are keyed by the access token they were fetched under and
// replaced wholesale on refetch. A miss is (nil, nil), not an error.
type ProfileCache interface {
	Get(ctx context.Context, accessToken string) (*domain.UserProfile, error)
	Set(ctx context.Context, accessToken string, profile *domain.UserProfile) error
	Delete(ctx context.Context, accessToken string) error
}
