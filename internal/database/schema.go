package database

import (
	"context"
	"log"
)

// CreateTables creates all necessary database tables
func (db *DB) CreateTables(ctx context.Context) error {
	log.Println("Creating database tables...")

	intakesTable := `
	CREATE TABLE IF NOT EXISTS exec_intakes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_name VARCHAR(255) NOT NULL,
		industry VARCHAR(255),
		strategic_objectives TEXT,
		bottleneck_tags TEXT[],
		participants JSONB DEFAULT '[]',
		preferred_dates TEXT[],
		organizer_name VARCHAR(255),
		organizer_email VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	plansTable := `
	CREATE TABLE IF NOT EXISTS bootcamp_plans (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		intake_id UUID NOT NULL,
		simulations JSONB DEFAULT '[]',
		ai_myths TEXT[],
		bottlenecks TEXT[],
		ai_experience_level VARCHAR(50),
		strategic_goals TEXT[],
		risk_tolerance INT DEFAULT 3,
		competitive_landscape TEXT,
		pilot_expectations JSONB,
		agenda JSONB DEFAULT '[]',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (intake_id) REFERENCES exec_intakes(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_plans_intake ON bootcamp_plans(intake_id);
	`

	sessionsTable := `
	CREATE TABLE IF NOT EXISTS workshop_sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		intake_id UUID NOT NULL,
		plan_id UUID NOT NULL,
		facilitator_name VARCHAR(255),
		facilitator_email VARCHAR(255),
		scheduled_date TIMESTAMP,
		current_segment INT DEFAULT 1,
		status VARCHAR(50) DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (intake_id) REFERENCES exec_intakes(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_intake ON workshop_sessions(intake_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_status ON workshop_sessions(status);
	`

	bottlenecksTable := `
	CREATE TABLE IF NOT EXISTS bottleneck_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		author_name VARCHAR(255),
		content TEXT NOT NULL,
		cluster_name VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_bottlenecks_session ON bottleneck_submissions(session_id);
	`

	mapItemsTable := `
	CREATE TABLE IF NOT EXISTS map_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		author_name VARCHAR(255),
		content TEXT NOT NULL,
		lane VARCHAR(50) NOT NULL,
		votes INT DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_map_items_session ON map_items(session_id);
	CREATE INDEX IF NOT EXISTS idx_map_items_lane ON map_items(session_id, lane);
	`

	simulationResultsTable := `
	CREATE TABLE IF NOT EXISTS simulation_results (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		simulation_name VARCHAR(255),
		author_name VARCHAR(255),
		time_savings_pct DECIMAL(5,2) DEFAULT 0,
		quality_rating DECIMAL(5,2) DEFAULT 0,
		quality_improvement_pct DECIMAL(5,2) DEFAULT 0,
		guardrails JSONB,
		task_breakdown JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_sim_results_session ON simulation_results(session_id);
	`

	workingGroupTable := `
	CREATE TABLE IF NOT EXISTS working_group_inputs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		author_name VARCHAR(255),
		topic VARCHAR(255),
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_working_group_session ON working_group_inputs(session_id);
	`

	votingResultsTable := `
	CREATE TABLE IF NOT EXISTS voting_results (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		voter_name VARCHAR(255),
		choice TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_voting_session ON voting_results(session_id);
	`

	strategyTable := `
	CREATE TABLE IF NOT EXISTS strategy_addendums (
		session_id UUID PRIMARY KEY,
		content TEXT DEFAULT '',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	`

	charterTable := `
	CREATE TABLE IF NOT EXISTS pilot_charters (
		session_id UUID PRIMARY KEY,
		pilot_owner VARCHAR(255) DEFAULT '',
		sponsor VARCHAR(255) DEFAULT '',
		budget VARCHAR(255) DEFAULT '',
		milestone_day10 TEXT DEFAULT '',
		milestone_day30 TEXT DEFAULT '',
		milestone_day60 TEXT DEFAULT '',
		milestone_day90 TEXT DEFAULT '',
		kill_criteria TEXT DEFAULT '',
		extend_criteria TEXT DEFAULT '',
		scale_criteria TEXT DEFAULT '',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	`

	preworkTable := `
	CREATE TABLE IF NOT EXISTS prework_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		intake_id UUID NOT NULL,
		participant_name VARCHAR(255),
		participant_email VARCHAR(255),
		responses JSONB DEFAULT '{}',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (intake_id) REFERENCES exec_intakes(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_prework_intake ON prework_submissions(intake_id);
	`

	reportsTable := `
	CREATE TABLE IF NOT EXISTS provocation_reports (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL,
		urgency_score INT NOT NULL,
		readiness_score INT NOT NULL,
		readiness_band VARCHAR(50),
		jargon_level INT DEFAULT 50,
		report_data JSONB NOT NULL,
		synthesis JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES workshop_sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_reports_session ON provocation_reports(session_id, created_at DESC);
	`

	// Execute all table creations
	tables := []string{
		intakesTable, plansTable, sessionsTable,
		bottlenecksTable, mapItemsTable, simulationResultsTable,
		workingGroupTable, votingResultsTable,
		strategyTable, charterTable, preworkTable, reportsTable,
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return err
		}
	}

	log.Println("✅ All tables created successfully")
	return nil
}
