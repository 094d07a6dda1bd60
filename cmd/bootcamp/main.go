package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/krishanraja/mindmaker-for-teams-sub001/config"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/agents"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/database"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/httpapi"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/notify"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("🚀 AI Leadership Bootcamp Server Starting...")

	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context
	ctx := context.Background()

	// Connect to database
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Create tables
	if err := db.CreateTables(ctx); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✅ Database connected and ready")

	// Create repositories
	sessionRepo := database.NewSessionRepository(db)
	intakeRepo := database.NewIntakeRepository(db)
	planRepo := database.NewPlanRepository(db)
	submissionRepo := database.NewSubmissionRepository(db)
	strategyRepo := database.NewStrategyRepository(db)
	reportRepo := database.NewReportRepository(db)

	// Report pipeline: aggregate, score, synthesize
	aggregator := report.NewAggregator(sessionRepo, intakeRepo, planRepo, submissionRepo, strategyRepo)
	synthesizer := agents.NewSynthesizerAgent(cfg.AnthropicKey)

	// Optional Slack notification on report generation
	var notifier report.Notifier
	if slackNotifier := notify.NewSlackNotifier(cfg.SlackToken, cfg.SlackReportChannel); slackNotifier != nil {
		notifier = slackNotifier
	}

	reportService := report.NewService(aggregator, synthesizer, reportRepo, notifier)

	// Create HTTP server
	server := httpapi.NewServer(
		reportService,
		sessionRepo,
		intakeRepo,
		planRepo,
		submissionRepo,
		strategyRepo,
		db,
		cfg.DefaultJargonLevel,
	)

	// Start server in a goroutine
	go func() {
		if err := server.Start(cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Println("✅ System initialized successfully")
	log.Println("📊 Database: Connected and ready")
	log.Println("🤖 Synthesizer agent: Active")
	log.Println("📡 HTTP API: Listening")
	log.Println("")
	log.Println("Server is running. Press Ctrl+C to stop...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")
}
