package models

import (
	"encoding/json"
	"time"
)

// ProvocationReport is a persisted report row. Rows are append-only:
// regeneration writes a new row and old rows are kept as history.
type ProvocationReport struct {
	ID             string          `json:"id"`
	SessionID      string          `json:"session_id"`
	UrgencyScore   int             `json:"urgency_score"`
	ReadinessScore int             `json:"readiness_score"`
	ReadinessBand  string          `json:"readiness_band"` // "Strong", "Moderate", "Needs Work"
	JargonLevel    int             `json:"jargon_level"`
	ReportData     json.RawMessage `json:"report_data"`
	Synthesis      json.RawMessage `json:"synthesis"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SynthesisItem is one strength or gap in the narrative synthesis
type SynthesisItem struct {
	Title          string `json:"title"`
	Evidence       string `json:"evidence"`
	Impact         string `json:"impact,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Synthesis is the constrained JSON document expected back from the
// text-generation API.
type Synthesis struct {
	ExecutiveSummary string          `json:"executiveSummary"`
	Strengths        []SynthesisItem `json:"strengths"`
	Gaps             []SynthesisItem `json:"gaps"`
	JourneyInsights  string          `json:"journeyInsights"`
	UrgencyVerdict   string          `json:"urgencyVerdict"`
}
