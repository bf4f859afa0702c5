package catalog

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/mactv-dev/mactv/pkg/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestJSONSourceFetch(t *testing.T) {
	ctrl := gomock.NewController(t)

	httpMock := mocks.NewMockHTTPClient(ctrl)
	httpMock.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, `[
		{"Channel Name": "Gemini TV", "logo": "https://cdn/gemini.png", "id": "gemini.in"},
		{"Channel Name": "  ", "logo": "ignored.png"},
		{"Channel Name": "NTV", "logo": "https://cdn/ntv.png"}
	]`), nil)

	src := NewJSONSource("tvtelugu", "https://tvtelugu.pages.dev/logo/channels.json", httpMock)
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 2)
	assert.Equal(t, Raw{Name: "Gemini TV", Logo: "https://cdn/gemini.png", ExternalID: "gemini.in"}, raws[0])
	assert.Equal(t, Raw{Name: "NTV", Logo: "https://cdn/ntv.png"}, raws[1])
}

func TestJSONSourceFetchMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)

	httpMock := mocks.NewMockHTTPClient(ctrl)
	httpMock.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, `{"oops": true}`), nil)

	src := NewJSONSource("tvtelugu", "https://example.com/channels.json", httpMock)
	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "malformed catalog payload")
}

func TestJSONSourceFetchBadStatus(t *testing.T) {
	ctrl := gomock.NewController(t)

	httpMock := mocks.NewMockHTTPClient(ctrl)
	httpMock.EXPECT().Do(gomock.Any()).Return(response(http.StatusBadGateway, ""), nil)

	src := NewJSONSource("tvtelugu", "https://example.com/channels.json", httpMock)
	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "unexpected status")
}

func TestM3USourceFetch(t *testing.T) {
	ctrl := gomock.NewController(t)

	playlist := "#EXTM3U\n" +
		"#EXTINF:-1 tvg-id=\"gemini.in\" tvg-logo=\"https://cdn/gemini.png\" group-title=\"Telugu\",Gemini TV\n" +
		"http://upstream/gemini.ts\n" +
		"#EXTINF:-1 tvg-name=\"NTV\" tvg-logo=\"https://cdn/ntv.png\",\n" +
		"http://upstream/ntv.ts\n"

	httpMock := mocks.NewMockHTTPClient(ctrl)
	httpMock.EXPECT().Do(gomock.Any()).Return(response(http.StatusOK, playlist), nil)

	src := NewM3USource("backup", "https://example.com/playlist.m3u", httpMock)
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 2)
	assert.Equal(t, Raw{Name: "Gemini TV", Logo: "https://cdn/gemini.png", ExternalID: "gemini.in"}, raws[0])
	// tvg-name fills in when the display name after the comma is empty
	assert.Equal(t, Raw{Name: "NTV", Logo: "https://cdn/ntv.png"}, raws[1])
}
