package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

func emptyContext() *Context {
	return &Context{SessionID: "session-1"}
}

func TestUrgencyScore_EmptySession(t *testing.T) {
	// Zero bottlenecks, zero simulations, zero voting results, experience
	// level unset: 25 timeline + 15 competitive + 0 bottleneck + 12
	// unrecognized-experience default + 8 market.
	rc := emptyContext()

	assert.Equal(t, 60, UrgencyScore(rc))
	assert.Equal(t, 0, PilotReadinessScore(rc))
	assert.Equal(t, "Needs Work", ReadinessBand(PilotReadinessScore(rc)))
}

func TestPilotReadinessScore_PartialWorkshop(t *testing.T) {
	// 30 bottlenecks, one simulation at 50% quality improvement with no
	// guardrails and no task breakdown, 3 ballots, no map votes:
	// 0 alignment + 15 performance + 0 guardrails + 0 breakdown + 15
	// engagement.
	rc := emptyContext()
	for i := 0; i < 30; i++ {
		rc.Workshop.Bottlenecks = append(rc.Workshop.Bottlenecks, &models.BottleneckSubmission{Content: fmt.Sprintf("bottleneck %d", i)})
	}
	rc.Simulations.Results = []*models.SimulationResult{
		{SimulationName: "contract triage", QualityImprovementPct: 50},
	}
	for i := 0; i < 3; i++ {
		rc.Workshop.VotingResults = append(rc.Workshop.VotingResults, &models.VotingResult{VoterName: fmt.Sprintf("voter %d", i)})
	}

	assert.Equal(t, 30, PilotReadinessScore(rc))
	assert.Equal(t, 20.0, bottleneckSeverity(len(rc.Workshop.Bottlenecks)), "severity caps at 20 for 30 submissions")
}

func TestUrgencyScore_CompetitiveThreatAheadMatch(t *testing.T) {
	tests := []struct {
		name       string
		objectives string
		landscape  string
		want       float64
	}{
		{"no match", "grow revenue", "crowded market", 15},
		{"lowercase in objectives", "stay ahead of rivals", "", 25},
		{"mixed case", "get AHEAD of the pack", "", 25},
		{"match in landscape", "", "competitors pulling Ahead", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, competitiveThreat(tt.objectives, tt.landscape))
		})
	}

	rc := emptyContext()
	rc.Company.StrategicObjectives = "stay Ahead of the market"
	assert.Equal(t, 70, UrgencyScore(rc))
}

// The readiness lookup keys do not all match the intake wizard's experience
// enum; "deploying" and "scaled" fall through to the 12-point default. This
// is long-standing observed behavior and must not be silently aligned.
func TestUrgencyScore_ExperienceLevelMismatch(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{"none", 15},
		{"experimenting", 12},
		{"some_pilots", 8},
		{"scaling", 4},
		{"deploying", 12}, // wizard enum value with no lookup key
		{"scaled", 12},    // wizard enum value with no lookup key
		{"", 12},
		{"garbage", 12},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, readinessInverse(tt.level))
		})
	}
}

func TestScoreComponents_Clamping(t *testing.T) {
	assert.Equal(t, 0.0, bottleneckSeverity(-5))
	assert.Equal(t, 20.0, bottleneckSeverity(1000000))

	assert.Equal(t, 0.0, aiPerformance(-50))
	assert.Equal(t, 30.0, aiPerformance(1e9))
	assert.Equal(t, 15.0, aiPerformance(50))

	assert.Equal(t, 0.0, engagement(-2))
	assert.Equal(t, 5.0, engagement(1))
	assert.Equal(t, 10.0, engagement(2))
	assert.Equal(t, 15.0, engagement(3))
	assert.Equal(t, 15.0, engagement(500))

	// have > total is adversarial input; the component still caps at its weight
	assert.Equal(t, 20.0, ratioComponent(5, 2, 20))
	assert.Equal(t, 0.0, ratioComponent(-1, 2, 20))
}

func TestRatioComponent_EmptyDenominatorIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ratioComponent(0, 0, 20))
	assert.Equal(t, 0.0, ratioComponent(0, 0, 15))
}

func TestScores_BoundsAndDeterminism(t *testing.T) {
	contexts := []*Context{
		emptyContext(),
		func() *Context {
			rc := emptyContext()
			rc.Company.StrategicObjectives = "race ahead"
			rc.PreWorkshop.AIExperienceLevel = "none"
			for i := 0; i < 500; i++ {
				rc.Workshop.Bottlenecks = append(rc.Workshop.Bottlenecks, &models.BottleneckSubmission{})
				rc.Workshop.VotingResults = append(rc.Workshop.VotingResults, &models.VotingResult{})
			}
			rc.Workshop.MapItems = []*models.EffortlessMapItem{{Lane: models.LaneOpportunity, Votes: 99}}
			rc.Simulations.Results = []*models.SimulationResult{
				{QualityImprovementPct: 100000, Guardrails: &models.Guardrails{}, TaskBreakdown: []models.TaskEntry{}},
			}
			return rc
		}(),
	}

	for i, rc := range contexts {
		t.Run(fmt.Sprintf("context_%d", i), func(t *testing.T) {
			urgency := UrgencyScore(rc)
			readiness := PilotReadinessScore(rc)

			assert.GreaterOrEqual(t, urgency, 0)
			assert.LessOrEqual(t, urgency, 100)
			assert.GreaterOrEqual(t, readiness, 0)
			assert.LessOrEqual(t, readiness, 100)

			// Same input, same output
			assert.Equal(t, urgency, UrgencyScore(rc))
			assert.Equal(t, readiness, PilotReadinessScore(rc))
		})
	}
}

func TestPilotReadinessScore_FullWorkshop(t *testing.T) {
	rc := emptyContext()
	rc.Workshop.MapItems = []*models.EffortlessMapItem{{Lane: models.LaneOpportunity, Votes: 4}}
	rc.Workshop.VotingResults = []*models.VotingResult{{}, {}, {}}
	rc.Simulations.Results = []*models.SimulationResult{
		{
			QualityImprovementPct: 100,
			Guardrails:            &models.Guardrails{RedFlags: []string{"pii"}},
			TaskBreakdown:         []models.TaskEntry{{Task: "draft", Category: models.TaskAIOnly}},
		},
	}

	// 20 alignment + 30 performance + 20 guardrails + 15 breakdown + 15 engagement
	score := PilotReadinessScore(rc)
	assert.Equal(t, 100, score)
	assert.Equal(t, "Strong", ReadinessBand(score))
}

func TestReadinessBand(t *testing.T) {
	assert.Equal(t, "Strong", ReadinessBand(80))
	assert.Equal(t, "Moderate", ReadinessBand(79))
	assert.Equal(t, "Moderate", ReadinessBand(60))
	assert.Equal(t, "Needs Work", ReadinessBand(59))
	assert.Equal(t, "Needs Work", ReadinessBand(0))
}
