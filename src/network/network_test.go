package network

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *NetworkManager {
	cfg := &models.MConfig{
		StatsAPI: models.MStatsAPIConfig{TimeoutSeconds: 5},
		Network:  models.MNetworkConfig{UserAgent: "test-agent"},
	}
	return NewNetworkManager(cfg, logger.NewLoggerWithWriter(io.Discard, "ERROR", "test"))
}

func TestBuildURL_KeepsExistingQuery(t *testing.T) {
	got, err := BuildURL("https://script.example.com/exec?key=abc", map[string]string{"type": "daily", "id": "7"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Query().Get("key"))
	assert.Equal(t, "daily", u.Query().Get("type"))
	assert.Equal(t, "7", u.Query().Get("id"))
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "weekly", r.URL.Query().Get("type"))
		w.Write([]byte(`{"rowData":[]}`))
	}))
	defer srv.Close()

	body, err := newTestManager().Get(context.Background(), srv.URL, map[string]string{"type": "weekly"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rowData":[]}`, string(body))
}

func TestGet_BadStatusIsFetchError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestManager().Get(context.Background(), srv.URL, nil)
	require.Error(t, err)

	status, ok := helpers.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, 500, status)
	assert.Equal(t, 1, calls, "requests are never retried")
}

func TestGet_OversizedBodyIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rowData":["0123456789"]}`))
	}))
	defer srv.Close()

	nm := newTestManager()
	nm.MaxBodyBytes = 16

	_, err := nm.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var ne *helpers.NetworkError
	assert.True(t, errors.As(err, &ne))
	assert.False(t, helpers.IsInvalidData(err), "an oversized body is not reported as missing data")
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestGet_BodyAtLimitIsAccepted(t *testing.T) {
	payload := `{"rowData":[1]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	nm := newTestManager()
	nm.MaxBodyBytes = int64(len(payload))

	body, err := nm.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestGet_TransportErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newTestManager().Get(context.Background(), addr, nil)
	require.Error(t, err)

	var ne *helpers.NetworkError
	assert.True(t, errors.As(err, &ne))
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestManager().Get(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
