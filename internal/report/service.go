package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// Scores bundles the two composite signals computed from a context.
type Scores struct {
	Urgency       int    `json:"urgency"`
	Readiness     int    `json:"readiness"`
	ReadinessBand string `json:"readinessBand"`
}

// ComputeScores evaluates both scoring functions over a context.
func ComputeScores(rc *Context) Scores {
	readiness := PilotReadinessScore(rc)
	return Scores{
		Urgency:       UrgencyScore(rc),
		Readiness:     readiness,
		ReadinessBand: ReadinessBand(readiness),
	}
}

// Synthesizer produces the narrative synthesis for a context. Implemented
// by agents.SynthesizerAgent.
type Synthesizer interface {
	Synthesize(ctx context.Context, rc *Context, scores Scores, jargonLevel int) (*models.Synthesis, error)
}

// ReportStore persists and loads generated reports.
type ReportStore interface {
	Create(ctx context.Context, report *models.ProvocationReport) error
	GetLatest(ctx context.Context, sessionID string) (*models.ProvocationReport, error)
}

// Notifier is told when a fresh report lands. Best-effort; failures are
// logged, never propagated.
type Notifier interface {
	ReportGenerated(ctx context.Context, sessionID string, scores Scores) error
}

// Result is the report function's success payload.
type Result struct {
	ReportData  json.RawMessage `json:"reportData"`
	AISynthesis json.RawMessage `json:"aiSynthesis"`
}

// reportData is what gets persisted and returned as reportData: the
// aggregated context with the scores alongside.
type reportData struct {
	*Context
	Scores Scores `json:"scores"`
}

// Service runs the full report pipeline: aggregate, score, synthesize,
// persist. Reports are cached in the store; a session's first request
// generates, later requests read the persisted row unless regeneration is
// requested explicitly.
type Service struct {
	aggregator  *Aggregator
	synthesizer Synthesizer
	reports     ReportStore
	notifier    Notifier
}

func NewService(aggregator *Aggregator, synthesizer Synthesizer, reports ReportStore, notifier Notifier) *Service {
	return &Service{
		aggregator:  aggregator,
		synthesizer: synthesizer,
		reports:     reports,
		notifier:    notifier,
	}
}

// GetOrGenerate returns the report for a session. With regenerate false a
// previously persisted report is returned as-is; otherwise a new one is
// generated and appended (old rows stay as history).
func (s *Service) GetOrGenerate(ctx context.Context, sessionID string, jargonLevel int, regenerate bool) (*Result, error) {
	if sessionID == "" {
		return nil, apperr.Validation("workshop_session_id is required")
	}
	if jargonLevel < 0 || jargonLevel > 100 {
		return nil, apperr.Validation("jargonLevel must be between 0 and 100, got %d", jargonLevel)
	}

	if !regenerate {
		cached, err := s.reports.GetLatest(ctx, sessionID)
		if err == nil {
			return &Result{ReportData: cached.ReportData, AISynthesis: cached.Synthesis}, nil
		}
		if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, fmt.Errorf("failed to load cached report: %w", err)
		}
	}

	rc, err := s.aggregator.Aggregate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	scores := ComputeScores(rc)

	synthesis, err := s.synthesizer.Synthesize(ctx, rc, scores, jargonLevel)
	if err != nil {
		// Nothing is persisted for a failed or malformed generation.
		return nil, err
	}

	dataJSON, err := json.Marshal(reportData{Context: rc, Scores: scores})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report data: %w", err)
	}
	synthesisJSON, err := json.Marshal(synthesis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis: %w", err)
	}

	row := &models.ProvocationReport{
		SessionID:      sessionID,
		UrgencyScore:   scores.Urgency,
		ReadinessScore: scores.Readiness,
		ReadinessBand:  scores.ReadinessBand,
		JargonLevel:    jargonLevel,
		ReportData:     dataJSON,
		Synthesis:      synthesisJSON,
	}
	if err := s.reports.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("📊 Report generated for session %s (urgency %d, readiness %d %s)",
		sessionID, scores.Urgency, scores.Readiness, scores.ReadinessBand)

	if s.notifier != nil {
		if err := s.notifier.ReportGenerated(ctx, sessionID, scores); err != nil {
			log.Printf("⚠️ Report notification failed: %v", err)
		}
	}

	return &Result{ReportData: dataJSON, AISynthesis: synthesisJSON}, nil
}
