package catalog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	mhttp "github.com/mactv-dev/mactv/pkg/http"
)

// Raw is one (name, logo, external id) triple as a source reports it,
// before normalization.
type Raw struct {
	Name       string
	Logo       string
	ExternalID string
}

// Source yields reference triples from one external feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Raw, error)
}

func fetchBody(ctx context.Context, client mhttp.HTTPClient, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// JSONSource reads a structured channel list of the form
// [{"Channel Name": "...", "logo": "...", "id": "..."}].
type JSONSource struct {
	name   string
	url    string
	client mhttp.HTTPClient
}

func NewJSONSource(name, url string, client mhttp.HTTPClient) *JSONSource {
	return &JSONSource{name: name, url: url, client: client}
}

func (s *JSONSource) Name() string {
	return s.name
}

type jsonChannel struct {
	ChannelName string `json:"Channel Name"`
	Logo        string `json:"logo"`
	ID          string `json:"id"`
}

func (s *JSONSource) Fetch(ctx context.Context) ([]Raw, error) {
	body, err := fetchBody(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}

	var channels []jsonChannel
	if err := json.Unmarshal(body, &channels); err != nil {
		return nil, fmt.Errorf("malformed catalog payload: %w", err)
	}

	raws := make([]Raw, 0, len(channels))
	for _, ch := range channels {
		name := strings.TrimSpace(ch.ChannelName)
		if name == "" {
			continue
		}
		raws = append(raws, Raw{Name: name, Logo: ch.Logo, ExternalID: ch.ID})
	}

	return raws, nil
}

// M3USource reads an M3U playlist and lifts the name/logo/id pairs
// embedded in its #EXTINF attribute lines. Stream URLs in the
// playlist are ignored; only the reference metadata matters here.
type M3USource struct {
	name   string
	url    string
	client mhttp.HTTPClient
}

func NewM3USource(name, url string, client mhttp.HTTPClient) *M3USource {
	return &M3USource{name: name, url: url, client: client}
}

func (s *M3USource) Name() string {
	return s.name
}

var (
	tvgLogo = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	tvgID   = regexp.MustCompile(`tvg-id="([^"]*)"`)
	tvgName = regexp.MustCompile(`tvg-name="([^"]*)"`)
)

func (s *M3USource) Fetch(ctx context.Context) ([]Raw, error) {
	body, err := fetchBody(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}

	var raws []Raw
	scanner := bufio.NewScanner(strings.NewReader(string(body)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#EXTINF:") {
			continue
		}

		raw := Raw{
			Logo:       extractAttr(tvgLogo, line),
			ExternalID: extractAttr(tvgID, line),
		}

		// the display name after the last attribute comma wins over
		// tvg-name, matching how players resolve it
		if parts := strings.SplitN(line, ",", 2); len(parts) == 2 {
			raw.Name = strings.TrimSpace(parts[1])
		}
		if raw.Name == "" {
			raw.Name = extractAttr(tvgName, line)
		}
		if raw.Name == "" {
			continue
		}

		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning playlist: %w", err)
	}

	return raws, nil
}

func extractAttr(re *regexp.Regexp, line string) string {
	matches := re.FindStringSubmatch(line)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}
