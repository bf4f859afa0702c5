// Package probe answers "is this stream URL alive" within a bounded
// budget. Probing is policy-gated: runs that skip it trade dead links
// for latency.
package probe

import (
	"context"
	"net/http"

	mhttp "github.com/mactv-dev/mactv/pkg/http"
)

// Prober reports whether a URL is worth putting in the playlist.
type Prober interface {
	Alive(ctx context.Context, url string) bool
}

// HTTPProber issues one HEAD request per URL. Servers that reject
// HEAD get a single GET instead; the response body is never read.
type HTTPProber struct {
	client    mhttp.HTTPClient
	userAgent string
}

func NewHTTPProber(client mhttp.HTTPClient, userAgent string) *HTTPProber {
	return &HTTPProber{client: client, userAgent: userAgent}
}

func (p *HTTPProber) Alive(ctx context.Context, url string) bool {
	status, ok := p.request(ctx, http.MethodHead, url)
	if ok && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, ok = p.request(ctx, http.MethodGet, url)
	}
	return ok && status >= 200 && status < 400
}

func (p *HTTPProber) request(ctx context.Context, method, url string) (int, bool) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, false
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, false
	}
	resp.Body.Close()

	return resp.StatusCode, true
}

// NopProber treats every URL as alive. Used when liveness checking is
// disabled.
type NopProber struct{}

func (NopProber) Alive(_ context.Context, _ string) bool {
	return true
}
