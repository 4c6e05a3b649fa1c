package analysis

import (
	"fmt"

	"progress-report-bot/src/analysis/core"
	"progress-report-bot/src/helpers"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
)

const (
	unknownSubject = "Unknown"
	unknownPeriod  = "N/A"
)

type MetricDeriver struct {
	Layout *RowLayout
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMetricDeriver(mode models.MRenderMode, log *logger.Logger) (*MetricDeriver, error) {
	layout, err := LayoutFor(mode)
	if err != nil {
		return nil, err
	}
	return &MetricDeriver{Layout: layout, Logger: log}, nil
}

// -----------------------------------------------------------------------------

// Derive maps a raw row into a typed record. requestedID is used when the row
// carries no subject id. A row missing the subject, period or power columns is
// a *helpers.SchemaError; absent metric columns coerce to 0.
func (d *MetricDeriver) Derive(row models.MRawRow, requestedID string) (*models.MStatsRecord, error) {
	if len(row) < d.Layout.RequiredLen() {
		return nil, helpers.NewSchemaError(fmt.Sprintf("row has %d columns, layout needs %d", len(row), d.Layout.RequiredLen()))
	}
	if len(row) < d.Layout.FullLen() && d.Logger != nil {
		d.Logger.Warning("Row has %d of %d columns, missing metrics read as 0", len(row), d.Layout.FullLen())
	}

	record := &models.MStatsRecord{
		Mode:        d.Layout.Mode,
		SubjectName: displayOr(row[d.Layout.NameIndex], unknownSubject),
		SubjectID:   displayOr(row[d.Layout.IDIndex], requestedID),
		Period: models.MPeriod{
			From: displayOr(row[d.Layout.PeriodFrom], unknownPeriod),
			To:   displayOr(row[d.Layout.PeriodTo], unknownPeriod),
		},
		Metrics: make(map[string]models.MDerivedMetric, len(d.Layout.Metrics)),
	}

	for _, spec := range d.Layout.Metrics {
		record.Metrics[spec.Key] = d.deriveMetric(row, spec)
	}

	if d.Logger != nil {
		d.Logger.Debug("Derived %d metrics for %s (%s)", len(record.Metrics), record.SubjectName, record.SubjectID)
	}

	return record, nil
}

// -----------------------------------------------------------------------------

func (d *MetricDeriver) deriveMetric(row models.MRawRow, spec MetricSpec) models.MDerivedMetric {
	a := core.ToNumber(cell(row, spec.A))

	if spec.Single {
		return models.MDerivedMetric{Single: true, PartA: a, Base: a}
	}

	b := core.ToNumber(cell(row, spec.B))
	if d.Layout.Mode == models.RenderDelta {
		return models.MDerivedMetric{Base: a, Delta: b}
	}
	return models.MDerivedMetric{PartA: a, PartB: b}
}

// -----------------------------------------------------------------------------

// cell returns nil for columns past the end of the row.
func cell(row models.MRawRow, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func displayOr(v any, fallback string) string {
	if core.IsBlank(v) {
		return fallback
	}
	return core.ToDisplay(v)
}
