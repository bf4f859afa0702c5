package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mhttp "github.com/mactv-dev/mactv/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestHTTPProberAlive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/redirect":
			http.Redirect(w, r, "/ok", http.StatusFound)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/no-head":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	p := NewHTTPProber(mhttp.NewClient(), "mag-ua")
	ctx := context.Background()

	assert.True(t, p.Alive(ctx, srv.URL+"/ok"))
	assert.True(t, p.Alive(ctx, srv.URL+"/redirect"))
	assert.True(t, p.Alive(ctx, srv.URL+"/no-head"))
	assert.False(t, p.Alive(ctx, srv.URL+"/gone"))
}

func TestHTTPProberUnreachable(t *testing.T) {
	p := NewHTTPProber(mhttp.NewClient(mhttp.WithTimeout(200*time.Millisecond)), "")

	assert.False(t, p.Alive(context.Background(), "http://127.0.0.1:1/stream"))
}

func TestNopProber(t *testing.T) {
	assert.True(t, NopProber{}.Alive(context.Background(), "http://anything"))
}
