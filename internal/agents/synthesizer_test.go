package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

const validSynthesisJSON = `{
	"executiveSummary": "The team is engaged but unprotected.",
	"strengths": [{"title": "High engagement", "evidence": "3 of 3 participants voted"}],
	"gaps": [{"title": "No guardrails", "evidence": "0 simulations carried guardrails", "recommendation": "Run a guardrails workshop"}],
	"journeyInsights": "Energy peaked during the simulation segment.",
	"urgencyVerdict": "Move within the quarter."
}`

func newUpstream(t *testing.T, status int, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("x-api-key"))

		w.WriteHeader(status)
		resp := anthropicResponse{Content: []anthropicContent{{Type: "text", Text: responseText}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAgent(url string) *SynthesizerAgent {
	return &SynthesizerAgent{apiKey: "test-key", apiURL: url, httpClient: &http.Client{}}
}

func testScores() report.Scores {
	return report.Scores{Urgency: 72, Readiness: 45, ReadinessBand: "Needs Work"}
}

func TestSynthesize_ParsesValidResponse(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, validSynthesisJSON)
	defer srv.Close()

	synthesis, err := newTestAgent(srv.URL).Synthesize(context.Background(), &report.Context{}, testScores(), 50)
	require.NoError(t, err)

	assert.Equal(t, "The team is engaged but unprotected.", synthesis.ExecutiveSummary)
	require.Len(t, synthesis.Strengths, 1)
	assert.Equal(t, "High engagement", synthesis.Strengths[0].Title)
	require.Len(t, synthesis.Gaps, 1)
	assert.Equal(t, "Run a guardrails workshop", synthesis.Gaps[0].Recommendation)
	assert.Equal(t, "Move within the quarter.", synthesis.UrgencyVerdict)
}

func TestSynthesize_MalformedJSONIsGenerationFailed(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "Here is your report: the team did great!")
	defer srv.Close()

	_, err := newTestAgent(srv.URL).Synthesize(context.Background(), &report.Context{}, testScores(), 50)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
}

func TestSynthesize_UpstreamErrorIsGenerationFailed(t *testing.T) {
	srv := newUpstream(t, http.StatusInternalServerError, "")
	defer srv.Close()

	_, err := newTestAgent(srv.URL).Synthesize(context.Background(), &report.Context{}, testScores(), 50)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
}

func TestSynthesize_UnreachableUpstreamIsGenerationFailed(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, validSynthesisJSON)
	srv.Close() // connection refused

	_, err := newTestAgent(srv.URL).Synthesize(context.Background(), &report.Context{}, testScores(), 50)
	require.Error(t, err)
	assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
}

func TestParseSynthesis(t *testing.T) {
	t.Run("tolerates markdown fences", func(t *testing.T) {
		synthesis, err := parseSynthesis("```json\n" + validSynthesisJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Move within the quarter.", synthesis.UrgencyVerdict)
	})

	t.Run("truncated JSON fails", func(t *testing.T) {
		_, err := parseSynthesis(validSynthesisJSON[:len(validSynthesisJSON)/2])
		require.Error(t, err)
		assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
	})

	t.Run("missing required keys fails", func(t *testing.T) {
		cases := []string{
			`{"strengths": [], "gaps": [], "journeyInsights": "x", "urgencyVerdict": "y"}`,
			`{"executiveSummary": "x", "strengths": [], "gaps": [], "journeyInsights": "x"}`,
			`{"executiveSummary": "x", "journeyInsights": "x", "urgencyVerdict": "y"}`,
		}
		for _, body := range cases {
			_, err := parseSynthesis(body)
			require.Error(t, err, body)
			assert.Equal(t, apperr.KindGenerationFailed, apperr.KindOf(err))
		}
	})

	t.Run("entry without evidence fails", func(t *testing.T) {
		_, err := parseSynthesis(`{
			"executiveSummary": "x",
			"strengths": [{"title": "no evidence given"}],
			"gaps": [],
			"journeyInsights": "x",
			"urgencyVerdict": "y"
		}`)
		require.Error(t, err)
	})

	t.Run("no partial parse of broken documents", func(t *testing.T) {
		synthesis, err := parseSynthesis(`{"executiveSummary": "x", "strengths": "not-an-array"}`)
		require.Error(t, err)
		assert.Nil(t, synthesis)
	})
}

func TestJargonInstruction_Banding(t *testing.T) {
	plain := jargonInstruction(0)
	balanced := jargonInstruction(50)
	expert := jargonInstruction(100)

	assert.NotEqual(t, plain, balanced)
	assert.NotEqual(t, balanced, expert)

	assert.Equal(t, plain, jargonInstruction(33))
	assert.Equal(t, balanced, jargonInstruction(34))
	assert.Equal(t, balanced, jargonInstruction(66))
	assert.Equal(t, expert, jargonInstruction(67))
}

func TestBuildPrompt_CarriesScoresAndConstraints(t *testing.T) {
	rc := &report.Context{SessionID: "session-1"}
	rc.Company.Name = "Acme Logistics"
	rc.EnrichedData.AvgTimeSavings = 42.5

	prompt, err := buildPrompt(rc, testScores(), 10)
	require.NoError(t, err)

	// Computed statistics are injected verbatim
	assert.Contains(t, prompt, "Urgency score: 72/100")
	assert.Contains(t, prompt, "Pilot readiness score: 45/100 (Needs Work)")
	assert.Contains(t, prompt, "Acme Logistics")
	assert.Contains(t, prompt, "42.5")

	// The no-fabrication constraint and the selected style instruction
	assert.Contains(t, prompt, "Do not invent statistics")
	assert.Contains(t, prompt, jargonInstruction(10))

	// The required response schema is pinned in the prompt
	for _, key := range []string{"executiveSummary", "strengths", "gaps", "journeyInsights", "urgencyVerdict"} {
		assert.Contains(t, prompt, key)
	}
}
