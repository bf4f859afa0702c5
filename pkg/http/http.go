package http

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds every outbound request. Portal and catalog
	// hosts are slow or unreachable often enough that waiting longer
	// only delays the run without producing more channels.
	DefaultTimeout = 8 * time.Second
)

// HTTPClient is the seam all outbound calls go through so tests can
// substitute a mock transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests with a per-call timeout and no retries. A
// timeout or transport error is reported to the caller as-is; the
// calling component decides whether the failure is fatal or absorbed.
type Client struct {
	client  HTTPClient
	timeout time.Duration
}

// ClientOption is a function that can be used to configure a Client
type ClientOption func(*Client)

// NewClient creates a bounded-timeout client around http.DefaultClient.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the per-request timeout for the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets the underlying transport to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// Do executes the request within the client's timeout. The request's
// own context still applies; the timeout only tightens it. The timeout
// covers the body read as well, so callers draining large responses
// inherit the same bound.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.timeout <= 0 {
		return c.client.Do(req)
	}

	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}

	// the context must stay alive until the caller finishes the body
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	b.cancel()
	return b.ReadCloser.Close()
}
