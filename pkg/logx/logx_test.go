package logx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestChain_RequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := slog.New(&Chain{
		Middleware: []Middleware{RequestID},
		Handler:    slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(buf),
	})

	lg.InfoCtx(ContextWithRequestID(context.Background(), "req-1"), "hello")
	assert.Contains(t, buf.String(), "request_id=req-1")

	buf.Reset()
	lg.With(slog.String("prefix", "x")).InfoCtx(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")
	assert.Contains(t, buf.String(), "prefix=x")
}

func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"a":"b"}`, string(body), "body must reach the server untouched")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(buf))

	rt := LoggingRoundTripper(lg, RoundTripperOpts{
		Level:         slog.LevelDebug,
		SecretHeaders: []string{"Authorization"},
	})(RequestIDHeader(http.DefaultTransport))

	req, err := http.NewRequest(http.MethodPost, ts.URL, strings.NewReader(`{"a":"b"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-token")

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))

	assert.Contains(t, buf.String(), "request sent")
	assert.Contains(t, buf.String(), "response received")
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestLoggingRoundTripper_TransportError(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(buf))

	rt := LoggingRoundTripper(lg, RoundTripperOpts{Level: slog.LevelDebug})(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1/unreachable", http.NoBody)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "request failed")
}
