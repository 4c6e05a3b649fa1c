package analysis

import (
	"fmt"

	"progress-report-bot/src/models"
)

// -----------------------------------------------------------------------------
// Row layout: the only place that knows what each rowData index means.
// -----------------------------------------------------------------------------

// MetricSpec reads one metric from the row. For pair metrics A/B are the two
// source columns (first/second part in combined mode, base/delta in delta
// mode). Single metrics read A only.
type MetricSpec struct {
	Key    string
	A      int
	B      int
	Single bool
}

type RowLayout struct {
	Mode        models.MRenderMode
	NameIndex   int
	IDIndex     int
	PeriodFrom  int
	PeriodTo    int
	Metrics     []MetricSpec
	requiredLen int
}

// -----------------------------------------------------------------------------

func pair(key string, a, b int) MetricSpec {
	return MetricSpec{Key: key, A: a, B: b}
}

func single(key string, a int) MetricSpec {
	return MetricSpec{Key: key, A: a, B: -1, Single: true}
}

// sharedMetrics are read from the same columns in both modes.
var sharedMetrics = []MetricSpec{
	pair(models.MetricKills, 13, 14),
	pair(models.MetricHealed, 15, 16),
	pair(models.MetricDeads, 17, 18),

	pair(models.MetricT5, 42, 36),
	pair(models.MetricT4, 43, 37),
	pair(models.MetricT3, 44, 38),
	pair(models.MetricT2, 45, 39),
	pair(models.MetricT1, 46, 40),

	single(models.MetricSpent, 19),
	single(models.MetricSpentFood, 20),
	single(models.MetricSpentWood, 21),
	single(models.MetricSpentStone, 22),
	single(models.MetricSpentGold, 23),

	single(models.MetricGathered, 24),
	single(models.MetricGatheredFood, 25),
	single(models.MetricGatheredWood, 26),
	single(models.MetricGatheredStone, 27),
	single(models.MetricGatheredGold, 28),
}

// -----------------------------------------------------------------------------

// LayoutFor returns the index table for a render mode.
func LayoutFor(mode models.MRenderMode) (*RowLayout, error) {
	var power MetricSpec
	switch mode {
	case models.RenderCombined:
		power = pair(models.MetricPower, 8, 9)
	case models.RenderDelta:
		power = pair(models.MetricPower, 9, 10)
	default:
		return nil, fmt.Errorf("unknown render mode %q", mode)
	}

	metrics := make([]MetricSpec, 0, len(sharedMetrics)+1)
	metrics = append(metrics, power)
	metrics = append(metrics, sharedMetrics...)

	l := &RowLayout{
		Mode:       mode,
		NameIndex:  3,
		IDIndex:    5,
		PeriodFrom: 30,
		PeriodTo:   29,
		Metrics:    metrics,
	}
	l.requiredLen = maxOf(l.NameIndex, l.IDIndex, l.PeriodFrom, l.PeriodTo, power.A, power.B) + 1
	return l, nil
}

// -----------------------------------------------------------------------------

// RequiredLen is the minimum row length: the subject, period and power
// columns must be present. Other columns past the end of the row read as 0.
func (l *RowLayout) RequiredLen() int {
	return l.requiredLen
}

// FullLen is the row length that covers every column the layout reads.
func (l *RowLayout) FullLen() int {
	idx := []int{l.NameIndex, l.IDIndex, l.PeriodFrom, l.PeriodTo}
	for _, m := range l.Metrics {
		idx = append(idx, m.A, m.B)
	}
	return maxOf(idx...) + 1
}

func maxOf(idx ...int) int {
	max := -1
	for _, i := range idx {
		if i > max {
			max = i
		}
	}
	return max
}
