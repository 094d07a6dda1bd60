package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

// SubmissionRepository holds the participant-submitted records scoped to a
// workshop session: bottlenecks, map items, simulation results, working
// group inputs and voting results.
type SubmissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CreateBottleneck inserts a bottleneck submission. Duplicate submissions
// from the same author are allowed.
func (r *SubmissionRepository) CreateBottleneck(ctx context.Context, b *models.BottleneckSubmission) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO bottleneck_submissions (id, session_id, author_name, content, cluster_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query, b.ID, b.SessionID, b.AuthorName, b.Content, b.ClusterName, b.CreatedAt)
	if err != nil {
		return apperr.Persistence("failed to create bottleneck submission", err)
	}
	return nil
}

// GetBottlenecks retrieves all bottleneck submissions for a session
func (r *SubmissionRepository) GetBottlenecks(ctx context.Context, sessionID string) ([]*models.BottleneckSubmission, error) {
	query := `
		SELECT id, session_id, author_name, content, cluster_name, created_at
		FROM bottleneck_submissions
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bottleneck submissions: %w", err)
	}
	defer rows.Close()

	var bottlenecks []*models.BottleneckSubmission
	for rows.Next() {
		b := &models.BottleneckSubmission{}
		if err := rows.Scan(&b.ID, &b.SessionID, &b.AuthorName, &b.Content, &b.ClusterName, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bottleneck submission: %w", err)
		}
		bottlenecks = append(bottlenecks, b)
	}

	return bottlenecks, nil
}

// CreateMapItem inserts an effortless map item
func (r *SubmissionRepository) CreateMapItem(ctx context.Context, item *models.EffortlessMapItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO map_items (id, session_id, author_name, content, lane, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query, item.ID, item.SessionID, item.AuthorName, item.Content, item.Lane, item.Votes, item.CreatedAt)
	if err != nil {
		return apperr.Persistence("failed to create map item", err)
	}
	return nil
}

// GetMapItems retrieves all map items for a session
func (r *SubmissionRepository) GetMapItems(ctx context.Context, sessionID string) ([]*models.EffortlessMapItem, error) {
	query := `
		SELECT id, session_id, author_name, content, lane, votes, created_at
		FROM map_items
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query map items: %w", err)
	}
	defer rows.Close()

	var items []*models.EffortlessMapItem
	for rows.Next() {
		item := &models.EffortlessMapItem{}
		if err := rows.Scan(&item.ID, &item.SessionID, &item.AuthorName, &item.Content, &item.Lane, &item.Votes, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan map item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// IncrementMapItemVotes bumps a map item's vote counter atomically
func (r *SubmissionRepository) IncrementMapItemVotes(ctx context.Context, itemID string) error {
	query := `UPDATE map_items SET votes = votes + 1 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, itemID)
	if err != nil {
		return apperr.Persistence("failed to increment map item votes", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("map item %s not found", itemID)
	}

	return nil
}

// CreateSimulationResult inserts a simulation result
func (r *SubmissionRepository) CreateSimulationResult(ctx context.Context, result *models.SimulationResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	var guardrailsJSON, breakdownJSON []byte
	var err error
	if result.Guardrails != nil {
		guardrailsJSON, err = json.Marshal(result.Guardrails)
		if err != nil {
			return fmt.Errorf("failed to marshal guardrails: %w", err)
		}
	}
	if result.TaskBreakdown != nil {
		breakdownJSON, err = json.Marshal(result.TaskBreakdown)
		if err != nil {
			return fmt.Errorf("failed to marshal task breakdown: %w", err)
		}
	}

	query := `
		INSERT INTO simulation_results (id, session_id, simulation_name, author_name,
		                                time_savings_pct, quality_rating, quality_improvement_pct,
		                                guardrails, task_breakdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		result.ID,
		result.SessionID,
		result.SimulationName,
		result.AuthorName,
		result.TimeSavingsPct,
		result.QualityRating,
		result.QualityImprovementPct,
		guardrailsJSON,
		breakdownJSON,
		result.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create simulation result", err)
	}
	return nil
}

// GetSimulationResults retrieves all simulation results for a session
func (r *SubmissionRepository) GetSimulationResults(ctx context.Context, sessionID string) ([]*models.SimulationResult, error) {
	query := `
		SELECT id, session_id, simulation_name, author_name, time_savings_pct,
		       quality_rating, quality_improvement_pct, guardrails, task_breakdown, created_at
		FROM simulation_results
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation results: %w", err)
	}
	defer rows.Close()

	var results []*models.SimulationResult
	for rows.Next() {
		result := &models.SimulationResult{}
		var guardrailsJSON, breakdownJSON []byte
		err := rows.Scan(
			&result.ID,
			&result.SessionID,
			&result.SimulationName,
			&result.AuthorName,
			&result.TimeSavingsPct,
			&result.QualityRating,
			&result.QualityImprovementPct,
			&guardrailsJSON,
			&breakdownJSON,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation result: %w", err)
		}
		if len(guardrailsJSON) > 0 {
			result.Guardrails = &models.Guardrails{}
			if err := json.Unmarshal(guardrailsJSON, result.Guardrails); err != nil {
				return nil, fmt.Errorf("failed to unmarshal guardrails: %w", err)
			}
		}
		if len(breakdownJSON) > 0 {
			if err := json.Unmarshal(breakdownJSON, &result.TaskBreakdown); err != nil {
				return nil, fmt.Errorf("failed to unmarshal task breakdown: %w", err)
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// CreateWorkingGroupInput inserts a working group input
func (r *SubmissionRepository) CreateWorkingGroupInput(ctx context.Context, input *models.WorkingGroupInput) error {
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO working_group_inputs (id, session_id, author_name, topic, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query, input.ID, input.SessionID, input.AuthorName, input.Topic, input.Content, input.CreatedAt)
	if err != nil {
		return apperr.Persistence("failed to create working group input", err)
	}
	return nil
}

// GetWorkingGroupInputs retrieves all working group inputs for a session
func (r *SubmissionRepository) GetWorkingGroupInputs(ctx context.Context, sessionID string) ([]*models.WorkingGroupInput, error) {
	query := `
		SELECT id, session_id, author_name, topic, content, created_at
		FROM working_group_inputs
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query working group inputs: %w", err)
	}
	defer rows.Close()

	var inputs []*models.WorkingGroupInput
	for rows.Next() {
		input := &models.WorkingGroupInput{}
		if err := rows.Scan(&input.ID, &input.SessionID, &input.AuthorName, &input.Topic, &input.Content, &input.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan working group input: %w", err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

// CreateVotingResult inserts a voting result
func (r *SubmissionRepository) CreateVotingResult(ctx context.Context, vote *models.VotingResult) error {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO voting_results (id, session_id, voter_name, choice, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query, vote.ID, vote.SessionID, vote.VoterName, vote.Choice, vote.CreatedAt)
	if err != nil {
		return apperr.Persistence("failed to create voting result", err)
	}
	return nil
}

// GetVotingResults retrieves all voting results for a session
func (r *SubmissionRepository) GetVotingResults(ctx context.Context, sessionID string) ([]*models.VotingResult, error) {
	query := `
		SELECT id, session_id, voter_name, choice, created_at
		FROM voting_results
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voting results: %w", err)
	}
	defer rows.Close()

	var votes []*models.VotingResult
	for rows.Next() {
		vote := &models.VotingResult{}
		if err := rows.Scan(&vote.ID, &vote.SessionID, &vote.VoterName, &vote.Choice, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voting result: %w", err)
		}
		votes = append(votes, vote)
	}

	return votes, nil
}
