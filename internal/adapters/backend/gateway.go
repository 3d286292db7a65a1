package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// Gateway normalizes and issues requests to the REST backend. It owns body
// encoding and header normalization only; auth retries live in Client and
// refresh coordination in Refresher.
type Gateway struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewGateway(baseURL string, client *http.Client, cb *gobreaker.CircuitBreaker, m *metrics.Metrics) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gateway{baseURL: baseURL, client: client, cb: cb, metrics: m}
}

// Send issues one request with the given bearer token attached, unless the
// request is marked Anonymous. The response body is fully buffered so
// callers can reissue the request without re-reading anything.
func (g *Gateway) Send(ctx context.Context, req ports.Request, access string) (*ports.Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	u := g.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	// An explicit Content-Type from the caller always wins; for multipart
	// bodies the boundary-bearing value computed above is the explicit one.
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if access != "" && !req.Anonymous {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	result, err := g.execute(httpReq)
	if err != nil {
		return nil, err
	}
	g.metrics.BackendRequest(result.StatusCode)
	return result, nil
}

func (g *Gateway) execute(httpReq *http.Request) (*ports.Response, error) {
	do := func() (interface{}, error) {
		resp, err := g.client.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &ports.Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
		}, nil
	}

	if g.cb == nil {
		v, err := do()
		if err != nil {
			return nil, err
		}
		return v.(*ports.Response), nil
	}
	v, err := g.cb.Execute(do)
	if err != nil {
		return nil, err
	}
	return v.(*ports.Response), nil
}

// encodeBody builds the request body. Multipart forms get their content type
// from the multipart writer so the boundary is always transport-computed;
// JSON payloads get application/json unless the caller set a Content-Type;
// raw bodies pass through with whatever type the caller recorded.
func encodeBody(req ports.Request) (io.Reader, string, error) {
	switch {
	case req.Form != nil:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for field, value := range req.Form.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", err
			}
		}
		for _, f := range req.Form.Files {
			part, err := w.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return buf, w.FormDataContentType(), nil

	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil

	case req.Raw != nil:
		return bytes.NewReader(req.Raw), req.RawContentType, nil
	}
	return nil, "", nil
}
