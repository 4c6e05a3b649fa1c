package interfaces

import (
	"context"

	"progress-report-bot/src/models"
)

// -----------------------------------------------------------------------------
// IStatsSource fetches one raw stats row per query from the remote API.
// -----------------------------------------------------------------------------

type IStatsSource interface {

	// Fetch performs a single attempt; no retries.
	Fetch(ctx context.Context, query models.MStatsQuery) (models.MRawRow, error)
}
