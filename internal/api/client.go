// Package api holds the typed clients for the upstream tourism REST API.
//
// Every designed failure path (transport errors, non-2xx statuses, 2xx
// bodies with success:false) travels back to callers as a normalized
// envelope value, never as a Go error. Errors are reserved for contract
// violations such as a non-JSON body on a 2xx response.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"wisata/internal/platform/metrics"
	"wisata/internal/platform/tracer"
	"wisata/internal/session"
)

// Client is the shared transport for all resource clients. The bearer
// token is read fresh from the session store on every authenticated
// call, never cached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	log        *slog.Logger
	tracer     tracer.Tracer
	metrics    *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTracer sets the tracer used to span upstream calls.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithMetrics sets the metrics sink for upstream request accounting.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the API at baseURL. store supplies the
// bearer token for admin-scoped endpoints and may be nil for a client
// that only touches public endpoints.
func NewClient(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		log:     slog.Default(),
		tracer:  tracer.NewNoop(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// token reads the current bearer token from the session store. Absence
// (logged out, corrupt store) yields an empty token; the upstream then
// rejects the call and the rejection flows back as a failure envelope.
func (c *Client) token() string {
	if c.store == nil {
		return ""
	}
	rec, err := c.store.Read()
	if err != nil {
		return ""
	}
	return rec.Token
}

// request performs one HTTP exchange. The returned error covers transport
// failures only; HTTP-level failures come back as a status code.
func (c *Client) request(ctx context.Context, op, method, path string, body io.Reader, contentType, token string) (int, []byte, error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanUpstreamCall,
		tracer.String(tracer.AttrOperation, op),
		tracer.String(tracer.AttrMethod, method),
		tracer.String(tracer.AttrPath, path),
	)
	start := time.Now()

	status, respBody, err := c.exchange(ctx, method, path, body, contentType, token)

	span.SetAttributes(tracer.Int(tracer.AttrStatus, status))
	span.End(err)

	if c.metrics != nil {
		c.metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		outcome := "success"
		switch {
		case err != nil:
			outcome = "transport_error"
		case status < 200 || status > 299:
			outcome = "failure"
		}
		c.metrics.UpstreamRequests.WithLabelValues(op, outcome).Inc()
	}

	if err != nil {
		c.log.WarnContext(ctx, "upstream request failed",
			"operation", op,
			"method", method,
			"path", path,
			"error", err,
		)
	}
	return status, respBody, err
}

func (c *Client) exchange(ctx context.Context, method, path string, body io.Reader, contentType, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// get issues a GET and normalizes the response. authed controls whether
// the bearer token is attached.
func (c *Client) get(ctx context.Context, op, path string, authed bool, fallback string) (Envelope, error) {
	token := ""
	if authed {
		token = c.token()
	}
	status, body, err := c.request(ctx, op, http.MethodGet, path, nil, "", token)
	if err != nil {
		return transportFailure(err), nil
	}
	return normalize(status, body, fallback)
}

// postJSON issues a JSON POST and normalizes the response. The raw
// status and body are also returned for callers with status-dependent
// semantics (the login 403 path).
func (c *Client) postJSON(ctx context.Context, op, path string, payload any, authed bool, fallback string) (Envelope, int, []byte, error) {
	encoded, err := jsonMarshal(payload)
	if err != nil {
		return Envelope{}, 0, nil, fmt.Errorf("encode payload: %w", err)
	}
	token := ""
	if authed {
		token = c.token()
	}
	status, body, err := c.request(ctx, op, http.MethodPost, path, bytes.NewReader(encoded), "application/json", token)
	if err != nil {
		return transportFailure(err), 0, nil, nil
	}
	env, err := normalize(status, body, fallback)
	return env, status, body, err
}

// postForm issues an authenticated multipart POST: scalar fields first,
// then each file under a repeated image[] part. This mirrors the
// browser FormData contract the upstream expects.
func (c *Client) postForm(ctx context.Context, op, path string, fields []formField, files []Upload, fallback string) (Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := writer.WriteField(f.key, f.value); err != nil {
			return Envelope{}, fmt.Errorf("encode form field %q: %w", f.key, err)
		}
	}
	for _, upload := range files {
		part, err := writer.CreateFormFile("image[]", upload.Name)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode form file %q: %w", upload.Name, err)
		}
		if _, err := io.Copy(part, upload.Content); err != nil {
			return Envelope{}, fmt.Errorf("copy form file %q: %w", upload.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Envelope{}, fmt.Errorf("finish form body: %w", err)
	}

	status, body, err := c.request(ctx, op, http.MethodPost, path, &buf, writer.FormDataContentType(), c.token())
	if err != nil {
		return transportFailure(err), nil
	}
	return normalize(status, body, fallback)
}

// delete issues an authenticated DELETE and normalizes the response.
func (c *Client) delete(ctx context.Context, op, path, fallback string) (Envelope, error) {
	status, body, err := c.request(ctx, op, http.MethodDelete, path, nil, "application/json", c.token())
	if err != nil {
		return transportFailure(err), nil
	}
	return normalize(status, body, fallback)
}

// Upload is one file attached to a create/update call.
type Upload struct {
	Name    string
	Content io.Reader
}

// formField keeps multipart fields in declaration order.
type formField struct {
	key   string
	value string
}
