package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

type fakeBackendClient struct {
	lastReq ports.Request
	resp    *ports.Response
	err     error
}

func (f *fakeBackendClient) Do(ctx context.Context, store ports.SessionStore, req ports.Request) (*ports.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func TestSchoolProxy_ForwardsPathQueryAndBody(t *testing.T) {
	backend := &fakeBackendClient{resp: &ports.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(`[{"id":"s-1"}]`),
	}}
	proxy := NewSchoolProxy(backend, "/api/school", "/api/v1", false)

	req := httptest.NewRequest(http.MethodPost, "/api/school/students/?class=5", strings.NewReader(`{"name":"Amina"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if backend.lastReq.Path != "/api/v1/students/" {
		t.Errorf("backend path = %q", backend.lastReq.Path)
	}
	if backend.lastReq.Query.Get("class") != "5" {
		t.Errorf("query = %v", backend.lastReq.Query)
	}
	if string(backend.lastReq.Raw) != `{"name":"Amina"}` || backend.lastReq.RawContentType != "application/json" {
		t.Errorf("body not forwarded verbatim: %q (%q)", backend.lastReq.Raw, backend.lastReq.RawContentType)
	}
	if rec.Body.String() != `[{"id":"s-1"}]` {
		t.Errorf("response body = %s", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("response Content-Type = %q", ct)
	}
}

func TestSchoolProxy_BackendStatusPassesThrough(t *testing.T) {
	backend := &fakeBackendClient{resp: &ports.Response{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"detail":"fee already paid"}`),
	}}
	proxy := NewSchoolProxy(backend, "/api/school", "/api/v1", false)

	req := httptest.NewRequest(http.MethodPost, "/api/school/fees/", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, backend status must pass through", rec.Code)
	}
}

func TestSchoolProxy_ExpiredSessionIsUnauthorized(t *testing.T) {
	backend := &fakeBackendClient{err: domain.ErrSessionExpired}
	proxy := NewSchoolProxy(backend, "/api/school", "/api/v1", false)

	req := httptest.NewRequest(http.MethodGet, "/api/school/results/", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for an expired session", rec.Code)
	}
}
