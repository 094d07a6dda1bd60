package models

import "time"

// StrategyAddendum is the facilitator's strategic notes for a session.
// Single row per session, upserted on autosave. Empty content is a
// legitimate save, not an error.
type StrategyAddendum struct {
	SessionID string    `json:"session_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PilotCharter is the 90-day pilot plan. Single row per session, upserted
// on autosave.
type PilotCharter struct {
	SessionID      string    `json:"session_id"`
	PilotOwner     string    `json:"pilot_owner"`
	Sponsor        string    `json:"sponsor"`
	Budget         string    `json:"budget"`
	MilestoneDay10 string    `json:"milestone_day10"`
	MilestoneDay30 string    `json:"milestone_day30"`
	MilestoneDay60 string    `json:"milestone_day60"`
	MilestoneDay90 string    `json:"milestone_day90"`
	KillCriteria   string    `json:"kill_criteria"`
	ExtendCriteria string    `json:"extend_criteria"`
	ScaleCriteria  string    `json:"scale_criteria"`
	UpdatedAt      time.Time `json:"updated_at"`
}
