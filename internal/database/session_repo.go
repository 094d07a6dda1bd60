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

type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new workshop session into the database
func (r *SessionRepository) Create(ctx context.Context, session *models.WorkshopSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO workshop_sessions (id, intake_id, plan_id, facilitator_name, facilitator_email,
		                               scheduled_date, current_segment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		session.ID,
		session.IntakeID,
		session.PlanID,
		session.FacilitatorName,
		session.FacilitatorEmail,
		session.ScheduledDate,
		session.CurrentSegment,
		session.Status,
		session.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create workshop session", err)
	}

	return nil
}

// GetByID retrieves a workshop session by its ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.WorkshopSession, error) {
	query := `
		SELECT id, intake_id, plan_id, facilitator_name, facilitator_email,
		       scheduled_date, current_segment, status, created_at
		FROM workshop_sessions
		WHERE id = $1
	`

	session := &models.WorkshopSession{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.IntakeID,
		&session.PlanID,
		&session.FacilitatorName,
		&session.FacilitatorEmail,
		&session.ScheduledDate,
		&session.CurrentSegment,
		&session.Status,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("workshop session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop session: %w", err)
	}

	return session, nil
}

// Update persists segment and status changes for a session
func (r *SessionRepository) Update(ctx context.Context, session *models.WorkshopSession) error {
	query := `
		UPDATE workshop_sessions
		SET facilitator_name = $2, facilitator_email = $3, scheduled_date = $4,
		    current_segment = $5, status = $6
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		session.ID,
		session.FacilitatorName,
		session.FacilitatorEmail,
		session.ScheduledDate,
		session.CurrentSegment,
		session.Status,
	)

	if err != nil {
		return apperr.Persistence("failed to update workshop session", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("workshop session %s not found", session.ID)
	}

	return nil
}

// GetByIntake retrieves all sessions scheduled for an intake
func (r *SessionRepository) GetByIntake(ctx context.Context, intakeID string) ([]*models.WorkshopSession, error) {
	query := `
		SELECT id, intake_id, plan_id, facilitator_name, facilitator_email,
		       scheduled_date, current_segment, status, created_at
		FROM workshop_sessions
		WHERE intake_id = $1
		ORDER BY scheduled_date
	`

	rows, err := r.db.Pool.Query(ctx, query, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workshop sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.WorkshopSession
	for rows.Next() {
		session := &models.WorkshopSession{}
		err := rows.Scan(
			&session.ID,
			&session.IntakeID,
			&session.PlanID,
			&session.FacilitatorName,
			&session.FacilitatorEmail,
			&session.ScheduledDate,
			&session.CurrentSegment,
			&session.Status,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
