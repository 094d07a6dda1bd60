package models

import "time"

// SimulationSnapshot is the free-text framing of one selected simulation
type SimulationSnapshot struct {
	CurrentState    string `json:"current_state"`
	DesiredOutcome  string `json:"desired_outcome"`
	SuccessCriteria string `json:"success_criteria"`
}

// SelectedSimulation pairs a simulation id with its snapshot
type SelectedSimulation struct {
	SimulationID string             `json:"simulation_id"`
	Name         string             `json:"name"`
	Snapshot     SimulationSnapshot `json:"snapshot"`
}

// PilotExpectations captures what the organizer expects from the 90-day pilot
type PilotExpectations struct {
	Outcome       string `json:"outcome"`
	TimelineWeeks int    `json:"timeline_weeks"`
	BudgetRange   string `json:"budget_range"`
}

// AgendaSegment is one entry of the configured agenda
type AgendaSegment struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BootcampPlan is the configured agenda derived from intake + AI-readiness
// wizard. One-to-one with an intake.
type BootcampPlan struct {
	ID                   string               `json:"id"`
	IntakeID             string               `json:"intake_id"`
	Simulations          []SelectedSimulation `json:"simulations"` // two selected
	AIMyths              []string             `json:"ai_myths"`
	Bottlenecks          []string             `json:"bottlenecks"`
	AIExperienceLevel    string               `json:"ai_experience_level"` // "none", "experimenting", "deploying", "scaled"
	StrategicGoals       []string             `json:"strategic_goals"`
	RiskTolerance        int                  `json:"risk_tolerance"` // 1..5
	CompetitiveLandscape string               `json:"competitive_landscape"`
	PilotExpectations    PilotExpectations    `json:"pilot_expectations"`
	Agenda               []AgendaSegment      `json:"agenda"`
	CreatedAt            time.Time            `json:"created_at"`
}

// NewBootcampPlan creates a plan shell for an intake
func NewBootcampPlan(intakeID string) *BootcampPlan {
	return &BootcampPlan{
		IntakeID:       intakeID,
		Simulations:    []SelectedSimulation{},
		AIMyths:        []string{},
		Bottlenecks:    []string{},
		StrategicGoals: []string{},
		Agenda:         []AgendaSegment{},
		CreatedAt:      time.Now(),
	}
}
