package models

import "time"

// Map item lanes. LaneOpportunity is the one the report pipeline ranks.
const (
	LaneCustomers   = "customers"
	LaneOperations  = "operations"
	LaneOpportunity = "opportunity"
)

// Task breakdown categories produced during the simulation segment.
const (
	TaskAIOnly    = "ai-only"
	TaskAIHuman   = "ai-human"
	TaskHumanOnly = "human-only"
)

// BottleneckSubmission is a participant-submitted friction point. No
// uniqueness constraint on author; duplicates are expected.
type BottleneckSubmission struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	ClusterName *string   `json:"cluster_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EffortlessMapItem is a participant-submitted map entry. Votes are
// incremented by the separate voting flow.
type EffortlessMapItem struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Lane       string    `json:"lane"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Guardrails captures a simulation's safety review
type Guardrails struct {
	Rules    []string `json:"rules"`
	RedFlags []string `json:"redFlags"`
}

// TaskEntry is one row of a simulation's task breakdown
type TaskEntry struct {
	Task     string `json:"task"`
	Category string `json:"category"` // "ai-only", "ai-human", "human-only"
}

// SimulationResult is one team's outcome from the simulation segment
type SimulationResult struct {
	ID                    string      `json:"id"`
	SessionID             string      `json:"session_id"`
	SimulationName        string      `json:"simulation_name"`
	AuthorName            string      `json:"author_name"`
	TimeSavingsPct        float64     `json:"time_savings_pct"`
	QualityRating         float64     `json:"quality_rating"`
	QualityImprovementPct float64     `json:"quality_improvement_pct"`
	Guardrails            *Guardrails `json:"guardrails,omitempty"`
	TaskBreakdown         []TaskEntry `json:"task_breakdown,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
}

// WorkingGroupInput is free-text output of a huddle working group
type WorkingGroupInput struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	AuthorName string    `json:"author_name"`
	Topic      string    `json:"topic"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// VotingResult is one participant ballot from the priority vote
type VotingResult struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	VoterName string    `json:"voter_name"`
	Choice    string    `json:"choice"`
	CreatedAt time.Time `json:"created_at"`
}
