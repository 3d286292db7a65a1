package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// RefreshPath is the backend token-refresh endpoint.
const RefreshPath = "/api/auth/token/refresh/"

// Refresher coordinates session refreshes. All callers holding the same
// refresh credential share a single in-flight network call; the flight slot
// is dropped as soon as the call settles, so the next caller after
// completion always starts a fresh attempt.
type Refresher struct {
	gw      *Gateway
	group   singleflight.Group
	metrics *metrics.Metrics
}

var _ ports.SessionRefresher = (*Refresher)(nil)

func NewRefresher(gw *Gateway, m *metrics.Metrics) *Refresher {
	return &Refresher{gw: gw, metrics: m}
}

// EnsureFresh exchanges the stored refresh credential for a new pair and
// returns the new access token. On any failure the store is cleared before
// the error is returned, so a failed refresh always leaves a clean
// logged-out state.
func (r *Refresher) EnsureFresh(ctx context.Context, store ports.SessionStore) (string, error) {
	creds, err := store.Load(ctx)
	if err != nil {
		return "", err
	}
	if creds.Refresh == "" {
		if err := store.Clear(ctx); err != nil {
			log.Printf("refresher: failed to clear session: %v", err)
		}
		return "", domain.ErrSessionExpired
	}

	v, err, _ := r.group.Do(creds.Refresh, func() (interface{}, error) {
		return r.refresh(ctx, creds.Refresh)
	})
	if err != nil {
		if clearErr := store.Clear(ctx); clearErr != nil {
			log.Printf("refresher: failed to clear session: %v", clearErr)
		}
		return "", err
	}

	fresh := v.(domain.Credentials)
	if err := store.Save(ctx, fresh); err != nil {
		return "", err
	}
	return fresh.Access, nil
}

func (r *Refresher) refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	resp, err := r.gw.Send(ctx, ports.Request{
		Method:    http.MethodPost,
		Path:      RefreshPath,
		JSON:      map[string]string{"refresh": refreshToken},
		Anonymous: true,
	}, "")
	if err != nil {
		r.metrics.Refresh("failure")
		return domain.Credentials{}, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	if resp.StatusCode != http.StatusOK {
		r.metrics.Refresh("failure")
		log.Printf("refresher: refresh rejected with status %d", resp.StatusCode)
		return domain.Credentials{}, domain.ErrSessionExpired
	}

	var fresh domain.Credentials
	if err := json.Unmarshal(resp.Body, &fresh); err != nil || !fresh.Complete() {
		r.metrics.Refresh("failure")
		return domain.Credentials{}, domain.ErrSessionExpired
	}
	r.metrics.Refresh("success")
	return fresh, nil
}
