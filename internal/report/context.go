package report

import (
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// CompanyContext is the intake-level framing of the engagement
type CompanyContext struct {
	Name                string `json:"name"`
	Industry            string `json:"industry"`
	StrategicObjectives string `json:"strategicObjectives"`
	OrganizerName       string `json:"organizerName"`
}

// PreWorkshopContext is everything configured before the live session
type PreWorkshopContext struct {
	PlanID               string                      `json:"planId"`
	AIMyths              []string                    `json:"aiMyths"`
	Bottlenecks          []string                    `json:"bottlenecks"`
	AIExperienceLevel    string                      `json:"aiExperienceLevel"`
	StrategicGoals       []string                    `json:"strategicGoals"`
	RiskTolerance        int                         `json:"riskTolerance"`
	CompetitiveLandscape string                      `json:"competitiveLandscape"`
	PilotExpectations    models.PilotExpectations    `json:"pilotExpectations"`
	PreWorkSubmissions   []*models.PreWorkSubmission `json:"preWorkSubmissions"`
}

// WorkshopContext is the raw in-session participant record set
type WorkshopContext struct {
	FacilitatorName    string                         `json:"facilitatorName"`
	CurrentSegment     int                            `json:"currentSegment"`
	SegmentName        string                         `json:"segmentName"`
	Bottlenecks        []*models.BottleneckSubmission `json:"bottlenecks"`
	MapItems           []*models.EffortlessMapItem    `json:"mapItems"`
	WorkingGroupInputs []*models.WorkingGroupInput    `json:"workingGroupInputs"`
	VotingResults      []*models.VotingResult         `json:"votingResults"`
}

// SimulationsContext pairs the selected simulations with participant results
type SimulationsContext struct {
	Selected []models.SelectedSimulation `json:"selected"`
	Results  []*models.SimulationResult  `json:"results"`
}

// StrategyContext is the facilitator-entered strategic text
type StrategyContext struct {
	Addendum string `json:"addendum"`
}

// NextStep is one entry of the D10/D30/D60/D90 plan template
type NextStep struct {
	Horizon string `json:"horizon"` // "D10", "D30", "D60", "D90"
	Text    string `json:"text"`
}

// EnrichedData holds the derived fields computed during aggregation rather
// than copied from any single record.
type EnrichedData struct {
	BottleneckClusters       []string                    `json:"bottleneckClusters"`
	TopOpportunities         []*models.EffortlessMapItem `json:"topOpportunities"`
	AvgTimeSavings           float64                     `json:"avgTimeSavings"`
	AvgQualityRating         float64                     `json:"avgQualityRating"`
	GuardrailsCount          int                         `json:"guardrailsCount"`
	RedFlagsCount            int                         `json:"redFlagsCount"`
	AICapablePct             int                         `json:"aiCapablePct"`
	HumanOnlyPct             int                         `json:"humanOnlyPct"`
	DerivedGoalsFromWorkshop []string                    `json:"derivedGoalsFromWorkshop"`
	RealisticNextSteps       []NextStep                  `json:"realisticNextSteps"`
}

// Context is the flat aggregation of everything score calculation and
// narrative synthesis read. It is a derived view: the report it feeds can
// always be regenerated from the underlying records.
type Context struct {
	SessionID    string              `json:"sessionId"`
	Company      CompanyContext      `json:"company"`
	PreWorkshop  PreWorkshopContext  `json:"preWorkshop"`
	Workshop     WorkshopContext     `json:"workshop"`
	Simulations  SimulationsContext  `json:"simulations"`
	Strategy     StrategyContext     `json:"strategy"`
	Charter      models.PilotCharter `json:"charter"`
	EnrichedData EnrichedData        `json:"enrichedData"`
}
