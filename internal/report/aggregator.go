package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// SessionStore loads a workshop session by id.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (*models.WorkshopSession, error)
}

// IntakeStore loads the pre-workshop intake and its pre-work submissions.
type IntakeStore interface {
	GetByID(ctx context.Context, id string) (*models.ExecIntake, error)
	GetPreWorkByIntake(ctx context.Context, intakeID string) ([]*models.PreWorkSubmission, error)
}

// PlanStore loads the configured bootcamp plan.
type PlanStore interface {
	GetByID(ctx context.Context, id string) (*models.BootcampPlan, error)
}

// SubmissionStore loads the participant records scoped to a session.
type SubmissionStore interface {
	GetBottlenecks(ctx context.Context, sessionID string) ([]*models.BottleneckSubmission, error)
	GetMapItems(ctx context.Context, sessionID string) ([]*models.EffortlessMapItem, error)
	GetSimulationResults(ctx context.Context, sessionID string) ([]*models.SimulationResult, error)
	GetWorkingGroupInputs(ctx context.Context, sessionID string) ([]*models.WorkingGroupInput, error)
	GetVotingResults(ctx context.Context, sessionID string) ([]*models.VotingResult, error)
}

// StrategyStore loads the facilitator-entered strategy records.
type StrategyStore interface {
	GetAddendum(ctx context.Context, sessionID string) (*models.StrategyAddendum, error)
	GetCharter(ctx context.Context, sessionID string) (*models.PilotCharter, error)
}

// Aggregator reduces all records of a workshop session into a single report
// context. It never writes.
type Aggregator struct {
	sessions    SessionStore
	intakes     IntakeStore
	plans       PlanStore
	submissions SubmissionStore
	strategy    StrategyStore
}

func NewAggregator(sessions SessionStore, intakes IntakeStore, plans PlanStore, submissions SubmissionStore, strategy StrategyStore) *Aggregator {
	return &Aggregator{
		sessions:    sessions,
		intakes:     intakes,
		plans:       plans,
		submissions: submissions,
		strategy:    strategy,
	}
}

// Aggregate fetches every record scoped to the session (and its parent
// intake) and reduces them into a Context. Sub-fetches run concurrently and
// fail fast: a partial context would silently skew the scores, so any fetch
// error aborts the whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, sessionID string) (*Context, error) {
	session, err := a.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var (
		intake      *models.ExecIntake
		plan        *models.BootcampPlan
		prework     []*models.PreWorkSubmission
		bottlenecks []*models.BottleneckSubmission
		mapItems    []*models.EffortlessMapItem
		simResults  []*models.SimulationResult
		wgInputs    []*models.WorkingGroupInput
		votes       []*models.VotingResult
		addendum    *models.StrategyAddendum
		charter     *models.PilotCharter
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { intake, err = a.intakes.GetByID(gctx, session.IntakeID); return })
	g.Go(func() (err error) { plan, err = a.plans.GetByID(gctx, session.PlanID); return })
	g.Go(func() (err error) { prework, err = a.intakes.GetPreWorkByIntake(gctx, session.IntakeID); return })
	g.Go(func() (err error) { bottlenecks, err = a.submissions.GetBottlenecks(gctx, sessionID); return })
	g.Go(func() (err error) { mapItems, err = a.submissions.GetMapItems(gctx, sessionID); return })
	g.Go(func() (err error) { simResults, err = a.submissions.GetSimulationResults(gctx, sessionID); return })
	g.Go(func() (err error) { wgInputs, err = a.submissions.GetWorkingGroupInputs(gctx, sessionID); return })
	g.Go(func() (err error) { votes, err = a.submissions.GetVotingResults(gctx, sessionID); return })
	g.Go(func() (err error) { addendum, err = a.strategy.GetAddendum(gctx, sessionID); return })
	g.Go(func() (err error) { charter, err = a.strategy.GetCharter(gctx, sessionID); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate session %s: %w", sessionID, err)
	}

	rc := &Context{
		SessionID: sessionID,
		Company: CompanyContext{
			Name:                intake.CompanyName,
			Industry:            intake.Industry,
			StrategicObjectives: intake.StrategicObjectives,
			OrganizerName:       intake.OrganizerName,
		},
		PreWorkshop: PreWorkshopContext{
			PlanID:               plan.ID,
			AIMyths:              plan.AIMyths,
			Bottlenecks:          plan.Bottlenecks,
			AIExperienceLevel:    plan.AIExperienceLevel,
			StrategicGoals:       plan.StrategicGoals,
			RiskTolerance:        plan.RiskTolerance,
			CompetitiveLandscape: plan.CompetitiveLandscape,
			PilotExpectations:    plan.PilotExpectations,
			PreWorkSubmissions:   prework,
		},
		Workshop: WorkshopContext{
			FacilitatorName:    session.FacilitatorName,
			CurrentSegment:     session.CurrentSegment,
			SegmentName:        session.SegmentName(),
			Bottlenecks:        bottlenecks,
			MapItems:           mapItems,
			WorkingGroupInputs: wgInputs,
			VotingResults:      votes,
		},
		Simulations: SimulationsContext{
			Selected: plan.Simulations,
			Results:  simResults,
		},
		Strategy: StrategyContext{Addendum: addendum.Content},
		Charter:  *charter,
	}

	rc.EnrichedData = enrich(rc)
	return rc, nil
}

// enrich computes the derived fields of the context
func enrich(rc *Context) EnrichedData {
	e := EnrichedData{
		BottleneckClusters: bottleneckClusters(rc.Workshop.Bottlenecks),
		TopOpportunities:   topOpportunities(rc.Workshop.MapItems),
	}

	e.AvgTimeSavings = meanOf(rc.Simulations.Results, func(r *models.SimulationResult) float64 { return r.TimeSavingsPct })
	e.AvgQualityRating = meanOf(rc.Simulations.Results, func(r *models.SimulationResult) float64 { return r.QualityRating })

	for _, r := range rc.Simulations.Results {
		if r.Guardrails != nil {
			e.GuardrailsCount++
			e.RedFlagsCount += len(r.Guardrails.RedFlags)
		}
	}

	e.AICapablePct, e.HumanOnlyPct = taskCategoryPcts(rc.Simulations.Results)

	if strings.TrimSpace(rc.Company.StrategicObjectives) == "" {
		e.DerivedGoalsFromWorkshop = deriveGoals(e.TopOpportunities, e.BottleneckClusters, rc.Simulations.Results)
	}

	e.RealisticNextSteps = nextSteps(rc.Charter.PilotOwner, e.TopOpportunities)
	return e
}

// bottleneckClusters returns the distinct non-null cluster names in order of
// first appearance.
func bottleneckClusters(bottlenecks []*models.BottleneckSubmission) []string {
	seen := make(map[string]bool)
	clusters := []string{}
	for _, b := range bottlenecks {
		if b.ClusterName == nil || *b.ClusterName == "" {
			continue
		}
		if !seen[*b.ClusterName] {
			seen[*b.ClusterName] = true
			clusters = append(clusters, *b.ClusterName)
		}
	}
	return clusters
}

// topOpportunities returns the opportunity-lane map items sorted by votes
// descending, capped at 5.
func topOpportunities(items []*models.EffortlessMapItem) []*models.EffortlessMapItem {
	opportunities := []*models.EffortlessMapItem{}
	for _, item := range items {
		if item.Lane == models.LaneOpportunity {
			opportunities = append(opportunities, item)
		}
	}
	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Votes > opportunities[j].Votes
	})
	if len(opportunities) > 5 {
		opportunities = opportunities[:5]
	}
	return opportunities
}

// meanOf returns the arithmetic mean of a field over the results. The mean
// of an empty set is 0, not NaN.
func meanOf(results []*models.SimulationResult, field func(*models.SimulationResult) float64) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += field(r)
	}
	return sum / float64(len(results))
}

// taskCategoryPcts flattens every task-breakdown entry across the results
// and returns the percentage that AI can do (alone or with a human) and the
// percentage that stays human-only, rounded to the nearest integer. An
// empty task set yields 0 for both.
func taskCategoryPcts(results []*models.SimulationResult) (aiCapable, humanOnly int) {
	var total, ai, human int
	for _, r := range results {
		for _, task := range r.TaskBreakdown {
			total++
			switch task.Category {
			case models.TaskAIOnly, models.TaskAIHuman:
				ai++
			case models.TaskHumanOnly:
				human++
			}
		}
	}
	if total == 0 {
		return 0, 0
	}
	aiCapable = int(math.Round(float64(ai) / float64(total) * 100))
	humanOnly = int(math.Round(float64(human) / float64(total) * 100))
	return aiCapable, humanOnly
}

// deriveGoals synthesizes fallback strategic goals from workshop output for
// intakes that arrived with no objectives text.
func deriveGoals(topOpps []*models.EffortlessMapItem, clusters []string, results []*models.SimulationResult) []string {
	goals := []string{}
	if len(topOpps) > 0 {
		goals = append(goals, fmt.Sprintf("Capture the %q opportunity the team voted highest", topOpps[0].Content))
	}
	if len(clusters) > 0 {
		goals = append(goals, fmt.Sprintf("Remove the %q bottleneck cluster", clusters[0]))
	}
	if len(results) > 0 && results[0].SimulationName != "" {
		goals = append(goals, fmt.Sprintf("Turn the %q simulation into a production workflow", results[0].SimulationName))
	}
	return goals
}

// nextSteps fills the fixed D10/D30/D60/D90 template from the pilot owner
// and the top opportunity when available.
func nextSteps(pilotOwner string, topOpps []*models.EffortlessMapItem) []NextStep {
	owner := "The pilot owner"
	if pilotOwner != "" {
		owner = pilotOwner
	}
	target := "the selected pilot workflow"
	if len(topOpps) > 0 {
		target = fmt.Sprintf("%q", topOpps[0].Content)
	}

	return []NextStep{
		{Horizon: "D10", Text: fmt.Sprintf("%s confirms pilot scope, sponsor and success metrics", owner)},
		{Horizon: "D30", Text: fmt.Sprintf("Ship a first working version of %s to a small internal group", target)},
		{Horizon: "D60", Text: fmt.Sprintf("Measure time savings and quality against the baseline for %s", target)},
		{Horizon: "D90", Text: fmt.Sprintf("%s presents the kill/extend/scale decision to the sponsor", owner)},
	}
}
