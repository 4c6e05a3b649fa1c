package report

import (
	"fmt"
	"strconv"
	"strings"

	"progress-report-bot/src/models"

	"github.com/dustin/go-humanize"
)

const (
	NoChange = "No Change For This Period"

	// PeriodLabel is a zero-width space so the period line renders without a heading.
	PeriodLabel = "\u200B"
)

// -----------------------------------------------------------------------------
// Section ordering is user-facing; do not reorder.
// -----------------------------------------------------------------------------

type sectionSpec struct {
	Label string
	Key   string
}

var sectionOrder = []sectionSpec{
	{"Power", models.MetricPower},
	{"Kills", models.MetricKills},
	{"T5 Killed", models.MetricT5},
	{"T4 Killed", models.MetricT4},
	{"T3 Killed", models.MetricT3},
	{"T2 Killed", models.MetricT2},
	{"T1 Killed", models.MetricT1},
	{"Deads", models.MetricDeads},
	{"Healed", models.MetricHealed},
	{"Resources Spent", models.MetricSpent},
	{"Food Spent", models.MetricSpentFood},
	{"Wood Spent", models.MetricSpentWood},
	{"Stone Spent", models.MetricSpentStone},
	{"Gold Spent", models.MetricSpentGold},
	{"Resources Gathered", models.MetricGathered},
	{"Food Gathered", models.MetricGatheredFood},
	{"Wood Gathered", models.MetricGatheredWood},
	{"Stone Gathered", models.MetricGatheredStone},
	{"Gold Gathered", models.MetricGatheredGold},
}

// -----------------------------------------------------------------------------

// Render builds the report for one command. Output depends only on its inputs.
func Render(command models.MCommand, rec *models.MStatsRecord) *models.MReport {
	sections := make([]models.MSection, 0, len(sectionOrder)+1)
	for _, s := range sectionOrder {
		m := rec.Metrics[s.Key]
		sections = append(sections, models.MSection{
			Label:  s.Label,
			Value:  FormatMetric(rec.Mode, m),
			Inline: true,
		})
	}

	sections = append(sections, models.MSection{
		Label: PeriodLabel,
		Value: FormatPeriod(rec.Period),
	})

	return &models.MReport{
		Title:    Title(command, rec.SubjectName, rec.SubjectID),
		Period:   rec.Period,
		Sections: sections,
	}
}

// -----------------------------------------------------------------------------

func Title(command models.MCommand, subjectName, subjectID string) string {
	return fmt.Sprintf("%s stats for %s ID: %s", strings.ToUpper(string(command)), subjectName, subjectID)
}

func FormatPeriod(p models.MPeriod) string {
	return fmt.Sprintf("📅Data Period: %s to %s", p.From, p.To)
}

// -----------------------------------------------------------------------------

func FormatMetric(mode models.MRenderMode, m models.MDerivedMetric) string {
	switch {
	case m.Single && mode == models.RenderDelta:
		return humanize.Commaf(m.Base)
	case m.Single:
		if m.PartA == 0 {
			return NoChange
		}
		return plain(m.PartA)
	case mode == models.RenderDelta:
		return FormatDelta(m.Base, m.Delta)
	default:
		return FormatCombined(m.PartA, m.PartB)
	}
}

// -----------------------------------------------------------------------------

// FormatCombined renders two period parts, marking a zero part as no change.
func FormatCombined(a, b float64) string {
	switch {
	case a == 0 && b == 0:
		return NoChange
	case a == 0:
		return NoChange + " + " + plain(b)
	case b == 0:
		return plain(a) + " + " + NoChange
	default:
		return plain(a) + " + " + plain(b)
	}
}

// -----------------------------------------------------------------------------

// FormatDelta renders a grouped base value followed by its signed delta.
func FormatDelta(base, delta float64) string {
	var marker string
	switch {
	case delta > 0:
		marker = "🟢 +" + humanize.Commaf(delta)
	case delta < 0:
		marker = "🔴 " + humanize.Commaf(delta)
	default:
		marker = "⚪ No Change"
	}
	return fmt.Sprintf("%s (%s)", humanize.Commaf(base), marker)
}

// -----------------------------------------------------------------------------

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
