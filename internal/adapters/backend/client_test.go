package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/edusuite/dashboard-gateway/internal/adapters/session"
	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// retryServer serves /api/v1/students/ accepting only "Bearer fresh", and a
// refresh endpoint whose behavior is configurable.
func retryServer(t *testing.T, refreshStatus int, secondAlso401 bool) (*httptest.Server, *int32, *int32) {
	t.Helper()
	var dataCalls, refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RefreshPath:
			atomic.AddInt32(&refreshCalls, 1)
			if refreshStatus != http.StatusOK {
				w.WriteHeader(refreshStatus)
				return
			}
			json.NewEncoder(w).Encode(domain.Credentials{Access: "fresh", Refresh: "fresh-r"})
		case "/api/v1/students/":
			atomic.AddInt32(&dataCalls, 1)
			if secondAlso401 || r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode([]string{"Amina", "Joseph"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &dataCalls, &refreshCalls
}

func newTestClient(srv *httptest.Server) *Client {
	gw := NewGateway(srv.URL, srv.Client(), nil, nil)
	return NewClient(gw, NewRefresher(gw, nil), nil)
}

func studentsRequest() ports.Request {
	return ports.Request{Method: http.MethodGet, Path: "/api/v1/students/"}
}

func TestDo_RetriesOnceAfterRefresh(t *testing.T) {
	srv, dataCalls, refreshCalls := retryServer(t, http.StatusOK, false)
	client := newTestClient(srv)
	store := session.NewMemoryStore(domain.Credentials{Access: "stale", Refresh: "r1"})

	resp, err := client.Do(context.Background(), store, studentsRequest())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 after retry", resp.StatusCode)
	}
	if got := atomic.LoadInt32(dataCalls); got != 2 {
		t.Errorf("data endpoint called %d times, want original + one retry", got)
	}
	if got := atomic.LoadInt32(refreshCalls); got != 1 {
		t.Errorf("refresh called %d times, want 1", got)
	}
}

func TestDo_RefreshFailureIsAuthError(t *testing.T) {
	srv, dataCalls, _ := retryServer(t, http.StatusUnauthorized, false)
	client := newTestClient(srv)
	store := session.NewMemoryStore(domain.Credentials{Access: "stale", Refresh: "r1"})

	_, err := client.Do(context.Background(), store, studentsRequest())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if got := atomic.LoadInt32(dataCalls); got != 1 {
		t.Errorf("data endpoint called %d times, want no retry after failed refresh", got)
	}

	creds, _ := store.Load(context.Background())
	if creds.Complete() {
		t.Error("failed refresh left a complete credential pair")
	}
}

func TestDo_SecondUnauthorizedSurfacedAsIs(t *testing.T) {
	srv, dataCalls, _ := retryServer(t, http.StatusOK, true)
	client := newTestClient(srv)
	store := session.NewMemoryStore(domain.Credentials{Access: "stale", Refresh: "r1"})

	resp, err := client.Do(context.Background(), store, studentsRequest())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want the second 401 surfaced", resp.StatusCode)
	}
	if got := atomic.LoadInt32(dataCalls); got != 2 {
		t.Errorf("data endpoint called %d times, retry budget is exactly one", got)
	}
}

func TestDo_NoRetryWithoutUnauthorized(t *testing.T) {
	srv, dataCalls, refreshCalls := retryServer(t, http.StatusOK, false)
	client := newTestClient(srv)
	store := session.NewMemoryStore(domain.Credentials{Access: "fresh", Refresh: "r1"})

	resp, err := client.Do(context.Background(), store, studentsRequest())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(dataCalls); got != 1 {
		t.Errorf("data endpoint called %d times, want 1", got)
	}
	if got := atomic.LoadInt32(refreshCalls); got != 0 {
		t.Errorf("refresh called %d times on a 200 response", got)
	}
}
