// Package portal is a client for Stalker/MAG middleware portals. It
// speaks just enough of the protocol to authenticate as an STB and
// enumerate the channel lineup.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	mhttp "github.com/mactv-dev/mactv/pkg/http"
)

const (
	// DefaultUserAgent is the MAG set-top-box identity most portals
	// expect; anything else tends to get an empty channel list.
	DefaultUserAgent = "Mozilla/5.0 (QtEmbedded; U; Linux; C) AppleWebKit/533.3 (KHTML, like Gecko) MAG200 stbapp ver: 2 rev: 250 Safari/533.3"

	xUserAgent = "Model: MAG250"
)

// ErrAuthFailed is returned when the portal handshake yields no token.
var ErrAuthFailed = errors.New("portal authentication failed")

// Client talks to one portal on behalf of one MAC identity. Handshake
// must succeed before Channels or Genres are called.
type Client struct {
	baseURL   string
	mac       string
	userAgent string
	client    mhttp.HTTPClient
	token     string
}

// ClientOption is a function that can be used to configure a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client to use for portal requests
func WithHTTPClient(client mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithUserAgent overrides the STB identity presented to the portal
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a portal client for the given base URL and MAC address.
func New(baseURL, mac string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("portal url is required")
	}
	if mac == "" {
		return nil, fmt.Errorf("portal mac address is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		mac:       mac,
		userAgent: DefaultUserAgent,
		client:    mhttp.NewClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// MAC returns the device identity the session was created with.
func (c *Client) MAC() string {
	return c.mac
}

// UserAgent returns the STB identity presented to the portal.
func (c *Client) UserAgent() string {
	return c.userAgent
}

func (c *Client) get(ctx context.Context, query string, out any) error {
	url := fmt.Sprintf("%s/portal.php?%s&JsHttpRequest=1-xml", c.baseURL, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create portal request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-User-Agent", xUserAgent)
	req.Header.Set("Cookie", "mac="+c.mac)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected portal status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed portal response: %w", err)
	}

	return nil
}

// Handshake authenticates against the portal and stores the bearer
// token for the rest of the session. A failed handshake is fatal to
// the caller's run; there is no anonymous access.
func (c *Client) Handshake(ctx context.Context) error {
	var envelope struct {
		JS struct {
			Token string `json:"token"`
		} `json:"js"`
	}

	if err := c.get(ctx, "type=stb&action=handshake", &envelope); err != nil {
		return err
	}

	if envelope.JS.Token == "" {
		return ErrAuthFailed
	}

	c.token = envelope.JS.Token
	return nil
}

// Channels lists every channel the portal reports, in portal order.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var envelope struct {
		JS struct {
			Data []Channel `json:"data"`
		} `json:"js"`
	}

	if err := c.get(ctx, "type=itv&action=get_all_channels", &envelope); err != nil {
		return nil, err
	}

	return envelope.JS.Data, nil
}

// Genres returns the portal's genre id to label mapping. Callers
// treat a failure here as degraded-continue: channels can still be
// filtered on name alone.
func (c *Client) Genres(ctx context.Context) (map[string]string, error) {
	var envelope struct {
		JS []struct {
			ID    FlexID `json:"id"`
			Title string `json:"title"`
		} `json:"js"`
	}

	if err := c.get(ctx, "type=itv&action=get_genres", &envelope); err != nil {
		return nil, err
	}

	genres := make(map[string]string, len(envelope.JS))
	for _, g := range envelope.JS {
		genres[string(g.ID)] = g.Title
	}

	return genres, nil
}
