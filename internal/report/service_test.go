package report

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

type fakeReportStore struct {
	rows []*models.ProvocationReport
}

func (f *fakeReportStore) Create(ctx context.Context, report *models.ProvocationReport) error {
	f.rows = append(f.rows, report)
	return nil
}

func (f *fakeReportStore) GetLatest(ctx context.Context, sessionID string) (*models.ProvocationReport, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].SessionID == sessionID {
			return f.rows[i], nil
		}
	}
	return nil, apperr.NotFound("no report for session %s", sessionID)
}

type fakeSynthesizer struct {
	calls int
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, rc *Context, scores Scores, jargonLevel int) (*models.Synthesis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Synthesis{
		ExecutiveSummary: "summary",
		Strengths:        []models.SynthesisItem{{Title: "engaged team", Evidence: "votes cast"}},
		Gaps:             []models.SynthesisItem{{Title: "no guardrails", Evidence: "none designed"}},
		JourneyInsights:  "insights",
		UrgencyVerdict:   "act now",
	}, nil
}

type recordingNotifier struct {
	sessions []string
}

func (n *recordingNotifier) ReportGenerated(ctx context.Context, sessionID string, scores Scores) error {
	n.sessions = append(n.sessions, sessionID)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeReportStore, *fakeSynthesizer, *recordingNotifier) {
	t.Helper()
	store := &fakeReportStore{}
	synth := &fakeSynthesizer{}
	notifier := &recordingNotifier{}
	svc := NewService(newTestAggregator(newFakeStore()), synth, store, notifier)
	return svc, store, synth, notifier
}

func TestGetOrGenerate_ValidatesInput(t *testing.T) {
	svc, _, synth, _ := newTestService(t)

	_, err := svc.GetOrGenerate(context.Background(), "", 50, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.GetOrGenerate(context.Background(), "session-1", 101, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.GetOrGenerate(context.Background(), "session-1", -1, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Zero(t, synth.calls, "validation failures never reach the synthesizer")
}

func TestGetOrGenerate_UnknownSession(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	_, err := svc.GetOrGenerate(context.Background(), "nope", 50, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.rows)
}

func TestGetOrGenerate_GeneratesAndPersistsOnFirstRequest(t *testing.T) {
	svc, store, synth, notifier := newTestService(t)

	result, err := svc.GetOrGenerate(context.Background(), "session-1", 50, false)
	require.NoError(t, err)
	require.Len(t, store.rows, 1)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, []string{"session-1"}, notifier.sessions)

	row := store.rows[0]
	assert.Equal(t, "session-1", row.SessionID)
	assert.Equal(t, 60, row.UrgencyScore)
	assert.Equal(t, 0, row.ReadinessScore)
	assert.Equal(t, "Needs Work", row.ReadinessBand)
	assert.Equal(t, 50, row.JargonLevel)

	// reportData carries the aggregated context plus the scores
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(result.ReportData, &data))
	for _, key := range []string{"company", "preWorkshop", "workshop", "simulations", "strategy", "charter", "enrichedData", "scores"} {
		assert.Contains(t, data, key)
	}

	var synthesis models.Synthesis
	require.NoError(t, json.Unmarshal(result.AISynthesis, &synthesis))
	assert.Equal(t, "act now", synthesis.UrgencyVerdict)
}

func TestGetOrGenerate_ReturnsCachedWithoutSynthesizing(t *testing.T) {
	svc, store, synth, _ := newTestService(t)

	first, err := svc.GetOrGenerate(context.Background(), "session-1", 50, false)
	require.NoError(t, err)

	second, err := svc.GetOrGenerate(context.Background(), "session-1", 50, false)
	require.NoError(t, err)

	assert.Equal(t, 1, synth.calls, "cached request must not invoke the synthesizer")
	assert.Len(t, store.rows, 1)
	assert.Equal(t, first.ReportData, second.ReportData)
	assert.Equal(t, first.AISynthesis, second.AISynthesis)
}

func TestGetOrGenerate_RegenerateAppendsNewRow(t *testing.T) {
	svc, store, synth, _ := newTestService(t)

	_, err := svc.GetOrGenerate(context.Background(), "session-1", 50, false)
	require.NoError(t, err)

	_, err = svc.GetOrGenerate(context.Background(), "session-1", 80, true)
	require.NoError(t, err)

	assert.Equal(t, 2, synth.calls, "regenerate always invokes the synthesizer")
	require.Len(t, store.rows, 2, "old rows are retained as history")
	assert.Equal(t, 50, store.rows[0].JargonLevel)
	assert.Equal(t, 80, store.rows[1].JargonLevel)
}

func TestGetOrGenerate_FailedGenerationPersistsNothing(t *testing.T) {
	svc, store, synth, notifier := newTestService(t)
	synth.err = apperr.GenerationFailed("response is not valid JSON", nil)

	_, err := svc.GetOrGenerate(context.Background(), "session-1", 50, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
	assert.Empty(t, store.rows, "a failed generation must not persist a partial report row")
	assert.Empty(t, notifier.sessions)
}
