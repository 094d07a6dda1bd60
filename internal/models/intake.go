package models

import "time"

// Participant is one attendee on an intake's roster
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ExecIntake is the organizer's pre-session submission. Immutable after
// creation except for participant growth via self-registration.
type ExecIntake struct {
	ID                  string        `json:"id"`
	CompanyName         string        `json:"company_name"`
	Industry            string        `json:"industry"`
	StrategicObjectives string        `json:"strategic_objectives"`
	BottleneckTags      []string      `json:"bottleneck_tags"`
	Participants        []Participant `json:"participants"`
	PreferredDates      []string      `json:"preferred_dates"`
	OrganizerName       string        `json:"organizer_name"`
	OrganizerEmail      string        `json:"organizer_email"`
	CreatedAt           time.Time     `json:"created_at"`
}

// NewExecIntake creates an intake with defaults
func NewExecIntake(companyName, industry, objectives, organizerName, organizerEmail string) *ExecIntake {
	return &ExecIntake{
		CompanyName:         companyName,
		Industry:            industry,
		StrategicObjectives: objectives,
		BottleneckTags:      []string{},
		Participants:        []Participant{},
		PreferredDates:      []string{},
		OrganizerName:       organizerName,
		OrganizerEmail:      organizerEmail,
		CreatedAt:           time.Now(),
	}
}

// PreWorkSubmission is a participant's pre-workshop questionnaire, scoped to
// the parent intake rather than a session.
type PreWorkSubmission struct {
	ID               string            `json:"id"`
	IntakeID         string            `json:"intake_id"`
	ParticipantName  string            `json:"participant_name"`
	ParticipantEmail string            `json:"participant_email"`
	Responses        map[string]string `json:"responses"`
	CreatedAt        time.Time         `json:"created_at"`
}
