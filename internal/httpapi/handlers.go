package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
)

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) handleCreateIntake(w http.ResponseWriter, r *http.Request) {
	var intake models.ExecIntake
	if !decodeBody(w, r, &intake) {
		return
	}

	if intake.CompanyName == "" {
		writeError(w, http.StatusBadRequest, "company_name is required")
		return
	}

	if err := s.intakes.Create(r.Context(), &intake); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, intake)
}

func (s *Server) handleGetIntake(w http.ResponseWriter, r *http.Request) {
	intake, err := s.intakes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intake)
}

func (s *Server) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var participant models.Participant
	if !decodeBody(w, r, &participant) {
		return
	}

	if participant.Name == "" || participant.Email == "" {
		writeError(w, http.StatusBadRequest, "participant name and email are required")
		return
	}

	if err := s.intakes.AppendParticipant(r.Context(), r.PathValue("id"), participant); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participant)
}

func (s *Server) handleCreatePreWork(w http.ResponseWriter, r *http.Request) {
	var submission models.PreWorkSubmission
	if !decodeBody(w, r, &submission) {
		return
	}

	submission.IntakeID = r.PathValue("id")
	if err := s.intakes.CreatePreWork(r.Context(), &submission); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.BootcampPlan
	if !decodeBody(w, r, &plan) {
		return
	}

	if plan.IntakeID == "" {
		writeError(w, http.StatusBadRequest, "intake_id is required")
		return
	}

	if err := s.plans.Create(r.Context(), &plan); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var session models.WorkshopSession
	if !decodeBody(w, r, &session) {
		return
	}

	if session.IntakeID == "" || session.PlanID == "" {
		writeError(w, http.StatusBadRequest, "intake_id and plan_id are required")
		return
	}
	if session.CurrentSegment == 0 {
		session.CurrentSegment = 1
	}
	if session.Status == "" {
		session.Status = "scheduled"
	}

	if err := s.sessions.Create(r.Context(), &session); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleAdvanceSegment(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	session.AdvanceSegment()

	if err := s.sessions.Update(r.Context(), session); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCreateBottleneck(w http.ResponseWriter, r *http.Request) {
	var submission models.BottleneckSubmission
	if !decodeBody(w, r, &submission) {
		return
	}

	if submission.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	submission.SessionID = r.PathValue("id")
	if err := s.submissions.CreateBottleneck(r.Context(), &submission); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

func (s *Server) handleCreateMapItem(w http.ResponseWriter, r *http.Request) {
	var item models.EffortlessMapItem
	if !decodeBody(w, r, &item) {
		return
	}

	if item.Content == "" || item.Lane == "" {
		writeError(w, http.StatusBadRequest, "content and lane are required")
		return
	}

	item.SessionID = r.PathValue("id")
	if err := s.submissions.CreateMapItem(r.Context(), &item); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleVoteMapItem(w http.ResponseWriter, r *http.Request) {
	if err := s.submissions.IncrementMapItemVotes(r.Context(), r.PathValue("itemID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSimulationResult(w http.ResponseWriter, r *http.Request) {
	var result models.SimulationResult
	if !decodeBody(w, r, &result) {
		return
	}

	result.SessionID = r.PathValue("id")
	if err := s.submissions.CreateSimulationResult(r.Context(), &result); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleCreateWorkingGroupInput(w http.ResponseWriter, r *http.Request) {
	var input models.WorkingGroupInput
	if !decodeBody(w, r, &input) {
		return
	}

	if input.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	input.SessionID = r.PathValue("id")
	if err := s.submissions.CreateWorkingGroupInput(r.Context(), &input); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, input)
}

func (s *Server) handleCreateVote(w http.ResponseWriter, r *http.Request) {
	var vote models.VotingResult
	if !decodeBody(w, r, &vote) {
		return
	}

	if vote.Choice == "" {
		writeError(w, http.StatusBadRequest, "choice is required")
		return
	}

	vote.SessionID = r.PathValue("id")
	if err := s.submissions.CreateVotingResult(r.Context(), &vote); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// handleUpsertStrategy saves the strategy addendum. Empty content is a
// legitimate save, so no content validation here.
func (s *Server) handleUpsertStrategy(w http.ResponseWriter, r *http.Request) {
	var addendum models.StrategyAddendum
	if !decodeBody(w, r, &addendum) {
		return
	}

	addendum.SessionID = r.PathValue("id")
	if err := s.strategy.UpsertAddendum(r.Context(), &addendum); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addendum)
}

func (s *Server) handleUpsertCharter(w http.ResponseWriter, r *http.Request) {
	var charter models.PilotCharter
	if !decodeBody(w, r, &charter) {
		return
	}

	charter.SessionID = r.PathValue("id")
	if err := s.strategy.UpsertCharter(r.Context(), &charter); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charter)
}
