package ports

import (
	"context"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
)

// SessionStore abstracts where the session credential pair lives. The
// production adapter is backed by the browser cookie exchange on a single
// request/response; tests use an in-memory store. Only login, refresh
// failure handling, and logout may mutate the stored pair.
type SessionStore interface {
	Load(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}
