package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

type PlanRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a new bootcamp plan into the database
func (r *PlanRepository) Create(ctx context.Context, plan *models.BootcampPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}

	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}

	simulationsJSON, err := json.Marshal(plan.Simulations)
	if err != nil {
		return fmt.Errorf("failed to marshal simulations: %w", err)
	}

	expectationsJSON, err := json.Marshal(plan.PilotExpectations)
	if err != nil {
		return fmt.Errorf("failed to marshal pilot expectations: %w", err)
	}

	agendaJSON, err := json.Marshal(plan.Agenda)
	if err != nil {
		return fmt.Errorf("failed to marshal agenda: %w", err)
	}

	query := `
		INSERT INTO bootcamp_plans (id, intake_id, simulations, ai_myths, bottlenecks,
		                            ai_experience_level, strategic_goals, risk_tolerance,
		                            competitive_landscape, pilot_expectations, agenda, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		plan.ID,
		plan.IntakeID,
		simulationsJSON,
		plan.AIMyths,
		plan.Bottlenecks,
		plan.AIExperienceLevel,
		plan.StrategicGoals,
		plan.RiskTolerance,
		plan.CompetitiveLandscape,
		expectationsJSON,
		agendaJSON,
		plan.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create bootcamp plan", err)
	}

	return nil
}

// GetByID retrieves a bootcamp plan by its ID
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.BootcampPlan, error) {
	query := `
		SELECT id, intake_id, simulations, ai_myths, bottlenecks, ai_experience_level,
		       strategic_goals, risk_tolerance, competitive_landscape, pilot_expectations,
		       agenda, created_at
		FROM bootcamp_plans
		WHERE id = $1
	`
	return r.scanPlan(r.db.Pool.QueryRow(ctx, query, id), id)
}

// GetByIntake retrieves the plan configured for an intake
func (r *PlanRepository) GetByIntake(ctx context.Context, intakeID string) (*models.BootcampPlan, error) {
	query := `
		SELECT id, intake_id, simulations, ai_myths, bottlenecks, ai_experience_level,
		       strategic_goals, risk_tolerance, competitive_landscape, pilot_expectations,
		       agenda, created_at
		FROM bootcamp_plans
		WHERE intake_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanPlan(r.db.Pool.QueryRow(ctx, query, intakeID), intakeID)
}

func (r *PlanRepository) scanPlan(row pgx.Row, id string) (*models.BootcampPlan, error) {
	plan := &models.BootcampPlan{}
	var simulationsJSON, expectationsJSON, agendaJSON []byte

	err := row.Scan(
		&plan.ID,
		&plan.IntakeID,
		&simulationsJSON,
		&plan.AIMyths,
		&plan.Bottlenecks,
		&plan.AIExperienceLevel,
		&plan.StrategicGoals,
		&plan.RiskTolerance,
		&plan.CompetitiveLandscape,
		&expectationsJSON,
		&agendaJSON,
		&plan.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("bootcamp plan for %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bootcamp plan: %w", err)
	}

	if len(simulationsJSON) > 0 {
		if err := json.Unmarshal(simulationsJSON, &plan.Simulations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal simulations: %w", err)
		}
	}
	if len(expectationsJSON) > 0 {
		if err := json.Unmarshal(expectationsJSON, &plan.PilotExpectations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pilot expectations: %w", err)
		}
	}
	if len(agendaJSON) > 0 {
		if err := json.Unmarshal(agendaJSON, &plan.Agenda); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agenda: %w", err)
		}
	}

	return plan, nil
}
