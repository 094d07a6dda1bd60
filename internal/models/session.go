package models

import "time"

// SegmentCount is the number of fixed phases in a live bootcamp session.
const SegmentCount = 7

// SegmentNames lists the seven facilitated phases in running order.
// CurrentSegment is 1-based, so segment n is SegmentNames[n-1].
var SegmentNames = [SegmentCount]string{
	"Mythbuster",
	"The Mirror",
	"Effortless Map",
	"Simulation Lab",
	"The Huddle",
	"Strategy Sprint",
	"Pilot Charter",
}

// WorkshopSession represents one live bootcamp run
type WorkshopSession struct {
	ID               string    `json:"id"`
	IntakeID         string    `json:"intake_id"`
	PlanID           string    `json:"plan_id"`
	FacilitatorName  string    `json:"facilitator_name"`
	FacilitatorEmail string    `json:"facilitator_email"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	CurrentSegment   int       `json:"current_segment"` // 1..7
	Status           string    `json:"status"`          // "scheduled", "live", "completed"
	CreatedAt        time.Time `json:"created_at"`
}

// NewWorkshopSession creates a session parked at the first segment
func NewWorkshopSession(intakeID, planID, facilitatorName, facilitatorEmail string, scheduledDate time.Time) *WorkshopSession {
	return &WorkshopSession{
		IntakeID:         intakeID,
		PlanID:           planID,
		FacilitatorName:  facilitatorName,
		FacilitatorEmail: facilitatorEmail,
		ScheduledDate:    scheduledDate,
		CurrentSegment:   1,
		Status:           "scheduled",
		CreatedAt:        time.Now(),
	}
}

// AdvanceSegment moves the session to the next segment. Advancing from the
// final segment marks the session completed and leaves the index at 7.
func (s *WorkshopSession) AdvanceSegment() {
	if s.Status == "scheduled" {
		s.Status = "live"
	}
	if s.CurrentSegment < SegmentCount {
		s.CurrentSegment++
		return
	}
	s.CurrentSegment = SegmentCount
	s.Status = "completed"
}

// SegmentName returns the name of the session's current segment.
func (s *WorkshopSession) SegmentName() string {
	if s.CurrentSegment < 1 || s.CurrentSegment > SegmentCount {
		return ""
	}
	return SegmentNames[s.CurrentSegment-1]
}
