package report

import (
	"math"
	"strings"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// Fixed weights of the urgency score. Timeline pressure and market velocity
// are deliberate constants (an always-present planning-horizon pressure and
// a default market pace), not derived values.
const (
	timelinePressurePoints = 25.0
	marketVelocityPoints   = 8.0

	competitiveThreatHigh = 25.0
	competitiveThreatBase = 15.0

	bottleneckSeverityMax = 20.0
	readinessInverseMax   = 15.0

	aiPerformanceMax      = 30.0
	strategicAlignmentPts = 20.0
	guardrailsMax         = 20.0
	taskBreakdownMax      = 15.0
	engagementMax         = 15.0
)

// readinessInverseMap scores how much the team's AI experience lowers the
// urgency of acting now. The keys intentionally do not all line up with the
// intake wizard's experience enum ("none", "experimenting", "deploying",
// "scaled"), so "deploying" and "scaled" fall through to the 12-point
// default. That mismatch is long-standing observed behavior and is kept.
var readinessInverseMap = map[string]float64{
	"none":          15,
	"experimenting": 12,
	"some_pilots":   8,
	"scaling":       4,
}

const readinessInverseDefault = 12.0

// ReadinessBand labels a pilot readiness score.
func ReadinessBand(score int) string {
	switch {
	case score >= 80:
		return "Strong"
	case score >= 60:
		return "Moderate"
	default:
		return "Needs Work"
	}
}

// UrgencyScore computes the 0-100 composite urgency signal. It is a pure
// function of the aggregated context: same input, same output.
func UrgencyScore(rc *Context) int {
	sum := timelinePressurePoints +
		competitiveThreat(rc.Company.StrategicObjectives, rc.PreWorkshop.CompetitiveLandscape) +
		bottleneckSeverity(len(rc.Workshop.Bottlenecks)) +
		readinessInverse(rc.PreWorkshop.AIExperienceLevel) +
		marketVelocityPoints
	return clampScore(math.Round(sum))
}

// PilotReadinessScore computes the 0-100 composite readiness signal from
// in-workshop performance data.
func PilotReadinessScore(rc *Context) int {
	votes := len(rc.Workshop.VotingResults)
	results := rc.Simulations.Results

	withGuardrails := 0
	withBreakdown := 0
	for _, r := range results {
		if r.Guardrails != nil {
			withGuardrails++
		}
		if r.TaskBreakdown != nil {
			withBreakdown++
		}
	}

	avgImprovement := meanOf(results, func(r *models.SimulationResult) float64 { return r.QualityImprovementPct })

	sum := strategicAlignment(rc.Workshop.MapItems) +
		aiPerformance(avgImprovement) +
		ratioComponent(withGuardrails, len(results), guardrailsMax) +
		ratioComponent(withBreakdown, len(results), taskBreakdownMax) +
		engagement(votes)
	return clampScore(math.Round(sum))
}

// competitiveThreat awards the high value when the strategic-objectives or
// competitive-landscape text mentions getting "ahead", case-insensitively.
func competitiveThreat(objectives, landscape string) float64 {
	combined := strings.ToLower(objectives) + " " + strings.ToLower(landscape)
	if strings.Contains(combined, "ahead") {
		return competitiveThreatHigh
	}
	return competitiveThreatBase
}

// bottleneckSeverity scales with submission count and caps at 20 points
// once 30 bottlenecks have been logged.
func bottleneckSeverity(count int) float64 {
	return clamp(float64(count)/30*bottleneckSeverityMax, 0, bottleneckSeverityMax)
}

func readinessInverse(level string) float64 {
	if pts, ok := readinessInverseMap[level]; ok {
		return pts
	}
	return readinessInverseDefault
}

// strategicAlignment awards full points once the team has run the priority
// vote on the effortless map, i.e. any map item carries at least one vote.
func strategicAlignment(mapItems []*models.EffortlessMapItem) float64 {
	for _, item := range mapItems {
		if item.Votes > 0 {
			return strategicAlignmentPts
		}
	}
	return 0
}

// aiPerformance converts the average quality-improvement percentage into a
// confidence component, capped at 30 points.
func aiPerformance(avgImprovementPct float64) float64 {
	return clamp(avgImprovementPct/100*aiPerformanceMax, 0, aiPerformanceMax)
}

// ratioComponent is the x / max(1, n) * weight form shared by the guardrails
// and task-breakdown components. An empty denominator set yields exactly 0.
func ratioComponent(have, total int, weight float64) float64 {
	if total < 1 {
		total = 1
	}
	return clamp(float64(have)/float64(total)*weight, 0, weight)
}

// engagement awards full points at three voters, otherwise 5 per voter.
func engagement(votes int) float64 {
	if votes >= 3 {
		return engagementMax
	}
	return clamp(float64(votes)*5, 0, engagementMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScore(v float64) int {
	return int(clamp(v, 0, 100))
}
