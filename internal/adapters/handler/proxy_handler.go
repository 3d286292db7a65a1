package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/edusuite/dashboard-gateway/internal/adapters/session"
	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// maxProxyBody caps buffered upload bodies (result sheets, post images).
const maxProxyBody = 20 << 20

// SchoolProxy forwards dashboard data calls (students, classes, fees,
// timetable, results, posts, announcements) verbatim to the backend through
// the authenticated client. No business logic lives here; the backend owns
// promotion rules, fee calculation and grade aggregation.
type SchoolProxy struct {
	client        ports.BackendClient
	prefix        string
	backendPrefix string
	secureCookies bool
}

func NewSchoolProxy(client ports.BackendClient, prefix, backendPrefix string, secureCookies bool) *SchoolProxy {
	return &SchoolProxy{
		client:        client,
		prefix:        strings.TrimRight(prefix, "/"),
		backendPrefix: strings.TrimRight(backendPrefix, "/"),
		secureCookies: secureCookies,
	}
}

func (p *SchoolProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, p.prefix)
	if rest == r.URL.Path {
		http.NotFound(w, r)
		return
	}

	var raw []byte
	if r.Body != nil {
		var err error
		raw, err = io.ReadAll(io.LimitReader(r.Body, maxProxyBody))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "unreadable request body"})
			return
		}
	}

	req := ports.Request{
		Method: r.Method,
		Path:   p.backendPrefix + rest,
		Query:  r.URL.Query(),
	}
	if len(raw) > 0 {
		req.Raw = raw
		req.RawContentType = r.Header.Get("Content-Type")
	}

	store := session.NewCookieStore(w, r, p.secureCookies)
	resp, err := p.client.Do(r.Context(), store, req)
	if errors.Is(err, domain.ErrSessionExpired) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Detail: "session expired, sign in again"})
		return
	}
	if err != nil {
		log.Printf("proxy: %s %s failed: %v", r.Method, req.Path, err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Detail: "backend unavailable"})
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		log.Printf("proxy: writing response failed: %v", err)
	}
}
