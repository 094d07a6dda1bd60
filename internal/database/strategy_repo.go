package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// StrategyRepository holds the single-row-per-session facilitator records:
// the strategy addendum and the pilot charter. Both are upserted on change;
// saving empty content is legitimate, not an error.
type StrategyRepository struct {
	db *DB
}

func NewStrategyRepository(db *DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

// UpsertAddendum inserts or replaces the strategy addendum for a session
func (r *StrategyRepository) UpsertAddendum(ctx context.Context, addendum *models.StrategyAddendum) error {
	addendum.UpdatedAt = time.Now()

	query := `
		INSERT INTO strategy_addendums (session_id, content, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE
		SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Pool.Exec(ctx, query, addendum.SessionID, addendum.Content, addendum.UpdatedAt)
	if err != nil {
		return apperr.Persistence("failed to upsert strategy addendum", err)
	}
	return nil
}

// GetAddendum retrieves the strategy addendum for a session. A session with
// no addendum yet returns an empty record, not an error.
func (r *StrategyRepository) GetAddendum(ctx context.Context, sessionID string) (*models.StrategyAddendum, error) {
	query := `SELECT session_id, content, updated_at FROM strategy_addendums WHERE session_id = $1`

	addendum := &models.StrategyAddendum{}
	err := r.db.Pool.QueryRow(ctx, query, sessionID).Scan(&addendum.SessionID, &addendum.Content, &addendum.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.StrategyAddendum{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy addendum: %w", err)
	}

	return addendum, nil
}

// UpsertCharter inserts or replaces the pilot charter for a session
func (r *StrategyRepository) UpsertCharter(ctx context.Context, charter *models.PilotCharter) error {
	charter.UpdatedAt = time.Now()

	query := `
		INSERT INTO pilot_charters (session_id, pilot_owner, sponsor, budget,
		                            milestone_day10, milestone_day30, milestone_day60, milestone_day90,
		                            kill_criteria, extend_criteria, scale_criteria, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (session_id) DO UPDATE
		SET pilot_owner = EXCLUDED.pilot_owner,
		    sponsor = EXCLUDED.sponsor,
		    budget = EXCLUDED.budget,
		    milestone_day10 = EXCLUDED.milestone_day10,
		    milestone_day30 = EXCLUDED.milestone_day30,
		    milestone_day60 = EXCLUDED.milestone_day60,
		    milestone_day90 = EXCLUDED.milestone_day90,
		    kill_criteria = EXCLUDED.kill_criteria,
		    extend_criteria = EXCLUDED.extend_criteria,
		    scale_criteria = EXCLUDED.scale_criteria,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Pool.Exec(ctx, query,
		charter.SessionID,
		charter.PilotOwner,
		charter.Sponsor,
		charter.Budget,
		charter.MilestoneDay10,
		charter.MilestoneDay30,
		charter.MilestoneDay60,
		charter.MilestoneDay90,
		charter.KillCriteria,
		charter.ExtendCriteria,
		charter.ScaleCriteria,
		charter.UpdatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to upsert pilot charter", err)
	}
	return nil
}

// GetCharter retrieves the pilot charter for a session. A session with no
// charter yet returns an empty record, not an error.
func (r *StrategyRepository) GetCharter(ctx context.Context, sessionID string) (*models.PilotCharter, error) {
	query := `
		SELECT session_id, pilot_owner, sponsor, budget,
		       milestone_day10, milestone_day30, milestone_day60, milestone_day90,
		       kill_criteria, extend_criteria, scale_criteria, updated_at
		FROM pilot_charters
		WHERE session_id = $1
	`

	charter := &models.PilotCharter{}
	err := r.db.Pool.QueryRow(ctx, query, sessionID).Scan(
		&charter.SessionID,
		&charter.PilotOwner,
		&charter.Sponsor,
		&charter.Budget,
		&charter.MilestoneDay10,
		&charter.MilestoneDay30,
		&charter.MilestoneDay60,
		&charter.MilestoneDay90,
		&charter.KillCriteria,
		&charter.ExtendCriteria,
		&charter.ScaleCriteria,
		&charter.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.PilotCharter{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pilot charter: %w", err)
	}

	return charter, nil
}
