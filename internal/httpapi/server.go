package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/database"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

// ReportService is the report pipeline entry point the server exposes.
type ReportService interface {
	GetOrGenerate(ctx context.Context, sessionID string, jargonLevel int, regenerate bool) (*report.Result, error)
}

type Server struct {
	reports            ReportService
	sessions           *database.SessionRepository
	intakes            *database.IntakeRepository
	plans              *database.PlanRepository
	submissions        *database.SubmissionRepository
	strategy           *database.StrategyRepository
	db                 *database.DB
	defaultJargonLevel int
}

func NewServer(
	reports ReportService,
	sessions *database.SessionRepository,
	intakes *database.IntakeRepository,
	plans *database.PlanRepository,
	submissions *database.SubmissionRepository,
	strategy *database.StrategyRepository,
	db *database.DB,
	defaultJargonLevel int,
) *Server {
	return &Server{
		reports:            reports,
		sessions:           sessions,
		intakes:            intakes,
		plans:              plans,
		submissions:        submissions,
		strategy:           strategy,
		db:                 db,
		defaultJargonLevel: defaultJargonLevel,
	}
}

// Mux builds the route table
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /functions/generate-provocation-report", s.handleGenerateReport)

	mux.HandleFunc("POST /api/intakes", s.handleCreateIntake)
	mux.HandleFunc("GET /api/intakes/{id}", s.handleGetIntake)
	mux.HandleFunc("POST /api/intakes/{id}/participants", s.handleRegisterParticipant)
	mux.HandleFunc("POST /api/intakes/{id}/prework", s.handleCreatePreWork)

	mux.HandleFunc("POST /api/plans", s.handleCreatePlan)
	mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/advance", s.handleAdvanceSegment)

	mux.HandleFunc("POST /api/sessions/{id}/bottlenecks", s.handleCreateBottleneck)
	mux.HandleFunc("POST /api/sessions/{id}/map-items", s.handleCreateMapItem)
	mux.HandleFunc("POST /api/sessions/{id}/map-items/{itemID}/vote", s.handleVoteMapItem)
	mux.HandleFunc("POST /api/sessions/{id}/simulations", s.handleCreateSimulationResult)
	mux.HandleFunc("POST /api/sessions/{id}/working-group", s.handleCreateWorkingGroupInput)
	mux.HandleFunc("POST /api/sessions/{id}/votes", s.handleCreateVote)

	mux.HandleFunc("PUT /api/sessions/{id}/strategy", s.handleUpsertStrategy)
	mux.HandleFunc("PUT /api/sessions/{id}/charter", s.handleUpsertCharter)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start runs the HTTP server
func (s *Server) Start(port string) error {
	log.Printf("🚀 Bootcamp server starting on port %s", port)
	log.Printf("📡 Report endpoint: http://localhost:%s/functions/generate-provocation-report", port)
	log.Printf("🏥 Health check: http://localhost:%s/health", port)

	return http.ListenAndServe(":"+port, s.Mux())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Health(r.Context()); err != nil {
			log.Printf("❌ Health check failed: %v", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type generateReportRequest struct {
	WorkshopSessionID string `json:"workshop_session_id"`
	JargonLevel       *int   `json:"jargonLevel,omitempty"`
	Regenerate        bool   `json:"regenerate,omitempty"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if req.WorkshopSessionID == "" {
		writeError(w, http.StatusBadRequest, "workshop_session_id is required")
		return
	}

	jargonLevel := s.defaultJargonLevel
	if req.JargonLevel != nil {
		jargonLevel = *req.JargonLevel
	}

	result, err := s.reports.GetOrGenerate(r.Context(), req.WorkshopSessionID, jargonLevel, req.Regenerate)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeAppError maps the error taxonomy onto status codes. Generation
// failures are marked retryable so the caller can offer a retry action
// instead of a dead end.
func writeAppError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case apperr.KindGenerationFailed:
		log.Printf("❌ Generation failed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Retryable: true})
	case apperr.KindPersistence:
		log.Printf("❌ Persistence error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("❌ Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
