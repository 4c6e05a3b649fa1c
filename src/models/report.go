package models

// -----------------------------------------------------------------------------
// Rendered report handed to the gateway
// -----------------------------------------------------------------------------

type MSection struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type MReport struct {
	Title    string     `json:"title"`
	Period   MPeriod    `json:"period"`
	Sections []MSection `json:"sections"`
}
