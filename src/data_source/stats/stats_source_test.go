package stats

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
	"progress-report-bot/src/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(baseURL string) *StatsSource {
	cfg := &models.MConfig{
		StatsAPI: models.MStatsAPIConfig{BaseURL: baseURL, TimeoutSeconds: 5},
	}
	log := logger.NewLoggerWithWriter(io.Discard, "ERROR", "test")
	return NewStatsSource(cfg, network.NewNetworkManager(cfg, log), log)
}

func TestFetch_SendsTypeAndID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "season", r.URL.Query().Get("type"))
		assert.Equal(t, "12345", r.URL.Query().Get("id"))
		w.Write([]byte(`{"rowData":["a", "12", 3]}`))
	}))
	defer srv.Close()

	row, err := newTestSource(srv.URL).Fetch(context.Background(), models.MStatsQuery{Type: "season", ID: "12345"})
	require.NoError(t, err)
	require.Len(t, row, 3)
	assert.Equal(t, "a", row[0])
	assert.Equal(t, "12", row[1])
	assert.Equal(t, json.Number("3"), row[2])
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL).Fetch(context.Background(), models.MStatsQuery{Type: "daily", ID: "1"})
	require.Error(t, err)
	status, ok := helpers.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestParseEnvelope_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":       `<html>oops</html>`,
		"missing":        `{"status":"ok"}`,
		"null":           `{"rowData":null}`,
		"string":         `{"rowData":"not-an-array"}`,
		"object":         `{"rowData":{"a":1}}`,
		"top-level list": `[1,2,3]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEnvelope([]byte(body))
			require.Error(t, err)
			assert.True(t, helpers.IsInvalidData(err))
		})
	}
}

func TestParseEnvelope_EmptyArrayIsValid(t *testing.T) {
	row, err := ParseEnvelope([]byte(`{"rowData":[]}`))
	require.NoError(t, err)
	assert.Empty(t, row)
}
