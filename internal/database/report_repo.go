package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// ReportRepository stores generated provocation reports. Rows are append
// only: regeneration writes a new row and history is retained.
type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new provocation report row
func (r *ReportRepository) Create(ctx context.Context, report *models.ProvocationReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO provocation_reports (id, session_id, urgency_score, readiness_score,
		                                 readiness_band, jargon_level, report_data, synthesis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		report.ID,
		report.SessionID,
		report.UrgencyScore,
		report.ReadinessScore,
		report.ReadinessBand,
		report.JargonLevel,
		[]byte(report.ReportData),
		[]byte(report.Synthesis),
		report.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create provocation report", err)
	}
	return nil
}

// GetLatest retrieves the most recent report for a session, or a NotFound
// error when the session has never had one generated.
func (r *ReportRepository) GetLatest(ctx context.Context, sessionID string) (*models.ProvocationReport, error) {
	query := `
		SELECT id, session_id, urgency_score, readiness_score, readiness_band,
		       jargon_level, report_data, synthesis, created_at
		FROM provocation_reports
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	report := &models.ProvocationReport{}
	var reportData, synthesis []byte
	err := r.db.Pool.QueryRow(ctx, query, sessionID).Scan(
		&report.ID,
		&report.SessionID,
		&report.UrgencyScore,
		&report.ReadinessScore,
		&report.ReadinessBand,
		&report.JargonLevel,
		&reportData,
		&synthesis,
		&report.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no report for session %s", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provocation report: %w", err)
	}

	report.ReportData = reportData
	report.Synthesis = synthesis
	return report, nil
}
