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

type IntakeRepository struct {
	db *DB
}

func NewIntakeRepository(db *DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

// Create inserts a new exec intake into the database
func (r *IntakeRepository) Create(ctx context.Context, intake *models.ExecIntake) error {
	if intake.ID == "" {
		intake.ID = uuid.New().String()
	}

	if intake.CreatedAt.IsZero() {
		intake.CreatedAt = time.Now()
	}

	participantsJSON, err := json.Marshal(intake.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}

	query := `
		INSERT INTO exec_intakes (id, company_name, industry, strategic_objectives, bottleneck_tags,
		                          participants, preferred_dates, organizer_name, organizer_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		intake.ID,
		intake.CompanyName,
		intake.Industry,
		intake.StrategicObjectives,
		intake.BottleneckTags,
		participantsJSON,
		intake.PreferredDates,
		intake.OrganizerName,
		intake.OrganizerEmail,
		intake.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create exec intake", err)
	}

	return nil
}

// GetByID retrieves an exec intake by its ID
func (r *IntakeRepository) GetByID(ctx context.Context, id string) (*models.ExecIntake, error) {
	query := `
		SELECT id, company_name, industry, strategic_objectives, bottleneck_tags,
		       participants, preferred_dates, organizer_name, organizer_email, created_at
		FROM exec_intakes
		WHERE id = $1
	`

	intake := &models.ExecIntake{}
	var participantsJSON []byte
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&intake.ID,
		&intake.CompanyName,
		&intake.Industry,
		&intake.StrategicObjectives,
		&intake.BottleneckTags,
		&participantsJSON,
		&intake.PreferredDates,
		&intake.OrganizerName,
		&intake.OrganizerEmail,
		&intake.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("exec intake %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exec intake: %w", err)
	}

	if len(participantsJSON) > 0 {
		if err := json.Unmarshal(participantsJSON, &intake.Participants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
		}
	}

	return intake, nil
}

// AppendParticipant appends a self-registered participant to the intake roster
func (r *IntakeRepository) AppendParticipant(ctx context.Context, intakeID string, participant models.Participant) error {
	participantJSON, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	query := `
		UPDATE exec_intakes
		SET participants = participants || $2::jsonb
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query, intakeID, participantJSON)
	if err != nil {
		return apperr.Persistence("failed to append participant", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("exec intake %s not found", intakeID)
	}

	return nil
}

// CreatePreWork inserts a participant's pre-workshop submission
func (r *IntakeRepository) CreatePreWork(ctx context.Context, submission *models.PreWorkSubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}

	responsesJSON, err := json.Marshal(submission.Responses)
	if err != nil {
		return fmt.Errorf("failed to marshal responses: %w", err)
	}

	query := `
		INSERT INTO prework_submissions (id, intake_id, participant_name, participant_email, responses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		submission.ID,
		submission.IntakeID,
		submission.ParticipantName,
		submission.ParticipantEmail,
		responsesJSON,
		submission.CreatedAt,
	)

	if err != nil {
		return apperr.Persistence("failed to create prework submission", err)
	}

	return nil
}

// GetPreWorkByIntake retrieves all pre-work submissions for an intake
func (r *IntakeRepository) GetPreWorkByIntake(ctx context.Context, intakeID string) ([]*models.PreWorkSubmission, error) {
	query := `
		SELECT id, intake_id, participant_name, participant_email, responses, created_at
		FROM prework_submissions
		WHERE intake_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prework submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.PreWorkSubmission
	for rows.Next() {
		submission := &models.PreWorkSubmission{}
		var responsesJSON []byte
		err := rows.Scan(
			&submission.ID,
			&submission.IntakeID,
			&submission.ParticipantName,
			&submission.ParticipantEmail,
			&responsesJSON,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prework submission: %w", err)
		}
		if len(responsesJSON) > 0 {
			if err := json.Unmarshal(responsesJSON, &submission.Responses); err != nil {
				return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
			}
		}
		submissions = append(submissions, submission)
	}

	return submissions, nil
}
