package httpclient

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := New(time.Second, zerolog.New(&buf).Level(zerolog.DebugLevel))

	resp, err := client.Get(ts.URL + "/admin/api/2024-01/customers/search.json?query=email:secret%40x.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "HTTP request completed")
	assert.Contains(t, buf.String(), "/admin/api/2024-01/customers/search.json")
	assert.NotContains(t, buf.String(), "secret")
}

func TestLoggingRoundTripper_Error(t *testing.T) {
	var buf bytes.Buffer
	client := New(time.Second, zerolog.New(&buf))

	_, err := client.Get("http://127.0.0.1:1/unreachable")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "HTTP request failed")
}

func TestWrap_KeepsTransport(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := Wrap(ts.Client(), zerolog.Nop())
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
