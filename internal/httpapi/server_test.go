package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

type stubReportService struct {
	lastSessionID   string
	lastJargonLevel int
	lastRegenerate  bool
	result          *report.Result
	err             error
}

func (s *stubReportService) GetOrGenerate(ctx context.Context, sessionID string, jargonLevel int, regenerate bool) (*report.Result, error) {
	s.lastSessionID = sessionID
	s.lastJargonLevel = jargonLevel
	s.lastRegenerate = regenerate
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(stub *stubReportService) *httptest.Server {
	srv := NewServer(stub, nil, nil, nil, nil, nil, nil, 50)
	return httptest.NewServer(srv.Mux())
}

func postReport(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/functions/generate-provocation-report", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestGenerateReport_MissingSessionIDIsClientError(t *testing.T) {
	stub := &stubReportService{}
	ts := newTestServer(stub)
	defer ts.Close()

	resp := postReport(t, ts.URL, `{"jargonLevel": 20}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	e := decodeError(t, resp)
	assert.Equal(t, "workshop_session_id is required", e.Error)
	assert.Empty(t, stub.lastSessionID, "service must not be called without a session id")
}

func TestGenerateReport_InvalidBodyIsClientError(t *testing.T) {
	ts := newTestServer(&stubReportService{})
	defer ts.Close()

	resp := postReport(t, ts.URL, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGenerateReport_Success(t *testing.T) {
	stub := &stubReportService{
		result: &report.Result{
			ReportData:  json.RawMessage(`{"sessionId":"session-1"}`),
			AISynthesis: json.RawMessage(`{"urgencyVerdict":"act now"}`),
		},
	}
	ts := newTestServer(stub)
	defer ts.Close()

	resp := postReport(t, ts.URL, `{"workshop_session_id": "session-1", "jargonLevel": 80, "regenerate": true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "session-1", stub.lastSessionID)
	assert.Equal(t, 80, stub.lastJargonLevel)
	assert.True(t, stub.lastRegenerate)

	var payload struct {
		ReportData  map[string]interface{} `json:"reportData"`
		AISynthesis map[string]interface{} `json:"aiSynthesis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "session-1", payload.ReportData["sessionId"])
	assert.Equal(t, "act now", payload.AISynthesis["urgencyVerdict"])
}

func TestGenerateReport_DefaultsJargonLevel(t *testing.T) {
	stub := &stubReportService{result: &report.Result{}}
	ts := newTestServer(stub)
	defer ts.Close()

	resp := postReport(t, ts.URL, `{"workshop_session_id": "session-1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 50, stub.lastJargonLevel)
	assert.False(t, stub.lastRegenerate)
}

func TestGenerateReport_ErrorKindStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		retryable  bool
	}{
		{"validation", apperr.Validation("jargonLevel must be between 0 and 100, got 400"), http.StatusBadRequest, false},
		{"not found", apperr.NotFound("workshop session x not found"), http.StatusNotFound, false},
		{"generation failed", apperr.GenerationFailed("response is not valid JSON", nil), http.StatusBadGateway, true},
		{"persistence", apperr.Persistence("failed to create provocation report", nil), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(&stubReportService{err: tt.err})
			defer ts.Close()

			resp := postReport(t, ts.URL, `{"workshop_session_id": "session-1"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			e := decodeError(t, resp)
			assert.NotEmpty(t, e.Error)
			assert.Equal(t, tt.retryable, e.Retryable, "generation failures must invite a retry")
		})
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&stubReportService{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
