package backend

import (
	"context"
	"net/http"

	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// Client composes the Gateway with the Refresher: a 401 triggers one
// refresh, and on success the original request is reissued exactly once.
// The retry budget is one attempt; a second 401 is returned to the caller
// as-is.
type Client struct {
	gw        *Gateway
	refresher ports.SessionRefresher
	metrics   *metrics.Metrics
}

var _ ports.BackendClient = (*Client)(nil)

func NewClient(gw *Gateway, refresher ports.SessionRefresher, m *metrics.Metrics) *Client {
	return &Client{gw: gw, refresher: refresher, metrics: m}
}

func (c *Client) Do(ctx context.Context, store ports.SessionStore, req ports.Request) (*ports.Response, error) {
	var access string
	if !req.Anonymous {
		creds, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		access = creds.Access
	}

	resp, err := c.gw.Send(ctx, req, access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || req.Anonymous {
		return resp, nil
	}

	access, err = c.refresher.EnsureFresh(ctx, store)
	if err != nil {
		// Refresh failed: the store is already cleared, surface the
		// authentication failure without retrying.
		return nil, err
	}
	c.metrics.Retry()
	return c.gw.Send(ctx, req, access)
}
