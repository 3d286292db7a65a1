package ports

import (
	"context"
	"net/http"
	"net/url"
)

// FormFile is a single file part of a multipart request.
type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

// Form describes a multipart/form-data body. The multipart boundary is
// always computed by the transport layer, never supplied by callers.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// Request describes one call to the REST backend. Exactly one of Form, JSON
// or Raw may be set; all three are replayable so a request can be reissued
// after a token refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// JSON is marshaled as the body with an application/json content type,
	// unless Header already carries an explicit Content-Type.
	JSON any

	// Form is sent as multipart/form-data.
	Form *Form

	// Raw is sent verbatim with RawContentType. Used by the pass-through
	// proxy, which must not reinterpret bodies.
	Raw            []byte
	RawContentType string

	// Anonymous suppresses credential attachment and the 401 retry.
	Anonymous bool
}

// Response is a fully-buffered backend response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// BackendClient issues requests to the REST backend, refreshing the session
// and retrying exactly once on 401.
type BackendClient interface {
	Do(ctx context.Context, store SessionStore, req Request) (*Response, error)
}

// SessionRefresher obtains a fresh credential pair. Concurrent callers for
// the same refresh credential share a single in-flight call; a failed
// refresh clears the store before the error is returned.
type SessionRefresher interface {
	EnsureFresh(ctx context.Context, store SessionStore) (string, error)
}
