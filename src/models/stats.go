package models

// MRawRow is the positional row returned by the stats API ("rowData").
type MRawRow []any

// -----------------------------------------------------------------------------

type MRenderMode string

const (
	RenderCombined MRenderMode = "combined"
	RenderDelta    MRenderMode = "delta"
)

// -----------------------------------------------------------------------------

// MDerivedMetric holds either a pair of period parts (combined mode), a
// base value with its period delta (delta mode), or a single value.
type MDerivedMetric struct {
	Single bool    `json:"single,omitempty"`
	PartA  float64 `json:"part_a"`
	PartB  float64 `json:"part_b"`
	Base   float64 `json:"base"`
	Delta  float64 `json:"delta"`
}

// -----------------------------------------------------------------------------

type MPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MStatsRecord is the typed view of a raw row.
type MStatsRecord struct {
	Mode        MRenderMode               `json:"mode"`
	SubjectName string                    `json:"subject_name"`
	SubjectID   string                    `json:"subject_id"`
	Period      MPeriod                   `json:"period"`
	Metrics     map[string]MDerivedMetric `json:"metrics"`
}

// -----------------------------------------------------------------------------
// Metric keys shared by the deriver and the renderer
// -----------------------------------------------------------------------------

const (
	MetricPower  = "power"
	MetricKills  = "kills"
	MetricT5     = "t5_kills"
	MetricT4     = "t4_kills"
	MetricT3     = "t3_kills"
	MetricT2     = "t2_kills"
	MetricT1     = "t1_kills"
	MetricDeads  = "deads"
	MetricHealed = "healed"

	MetricSpent      = "resources_spent"
	MetricSpentFood  = "food_spent"
	MetricSpentWood  = "wood_spent"
	MetricSpentStone = "stone_spent"
	MetricSpentGold  = "gold_spent"

	MetricGathered      = "resources_gathered"
	MetricGatheredFood  = "food_gathered"
	MetricGatheredWood  = "wood_gathered"
	MetricGatheredStone = "stone_gathered"
	MetricGatheredGold  = "gold_gathered"
)
