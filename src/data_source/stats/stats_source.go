package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
)

type StatsSource struct {
	BaseURL string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStatsSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *StatsSource {
	return &StatsSource{
		BaseURL: cfg.StatsAPI.BaseURL,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// Fetch requests GET {BaseURL}?type=..&id=.. once and returns the validated rowData.
func (s *StatsSource) Fetch(ctx context.Context, query models.MStatsQuery) (models.MRawRow, error) {
	params := map[string]string{
		"type": query.Type,
		"id":   query.ID,
	}

	s.Logger.Info("Fetching %s stats for ID %s", query.Type, query.ID)

	body, err := s.Network.Get(ctx, s.BaseURL, params)
	if err != nil {
		return nil, fmt.Errorf("stats fetch (%s/%s): %w", query.Type, query.ID, err)
	}

	return ParseEnvelope(body)
}

// -----------------------------------------------------------------------------

type statsEnvelope struct {
	RowData json.RawMessage `json:"rowData"`
}

// ParseEnvelope decodes {"rowData": [...]}. A body that is not JSON, lacks
// rowData, or carries a non-array rowData is a *helpers.PayloadError.
func ParseEnvelope(body []byte) (models.MRawRow, error) {
	var env statsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, helpers.NewPayloadError("response is not a JSON object", err)
	}

	raw := bytes.TrimSpace(env.RowData)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, helpers.NewPayloadError("rowData missing", nil)
	}
	if raw[0] != '[' {
		return nil, helpers.NewPayloadError("rowData is not an array", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var row []any
	if err := dec.Decode(&row); err != nil {
		return nil, helpers.NewPayloadError("rowData is not an array", err)
	}

	return models.MRawRow(row), nil
}
