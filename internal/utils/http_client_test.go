package utils

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-zca/internal/crypto"
)

// ── NewHTTPClient ─────────────────────────────────────────────────────────────

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	require.NotNil(t, client1.Client)
	assert.NotSame(t, client1.Client, client2.Client)
	assert.True(t, client1.FollowsRedirects())
}

func TestNewHTTPClient_Options(t *testing.T) {
	client := NewHTTPClient(
		WithTimeout(3*time.Second),
		WithHeaders(map[string]string{"Accept-Language": "vi-VN"}),
	)

	assert.Equal(t, 3*time.Second, client.GetClient().Timeout)
	assert.Equal(t, "vi-VN", client.Header.Get("Accept-Language"))
}

func TestNewHTTPClient_Redirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/done", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("done"))
	}))
	defer srv.Close()

	follow := NewHTTPClient()
	resp, err := follow.R().Get(srv.URL + "/start")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "done", resp.String())

	stop := NewHTTPClient(WithoutRedirects())
	assert.False(t, stop.FollowsRedirects())
	resp, err = stop.R().Get(srv.URL + "/start")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode())
	assert.Equal(t, "/done", resp.Header().Get("Location"))
}

// ── GenerateIMEI ──────────────────────────────────────────────────────────────

func TestGenerateIMEI(t *testing.T) {
	ua := "Mozilla/5.0 (X11; Linux x86_64)"

	a := GenerateIMEI(ua)
	b := GenerateIMEI(ua)

	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-[0-9a-f]{32}$`)
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, crypto.MD5Hex(ua), a[len(a)-32:])
}
