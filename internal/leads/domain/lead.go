// Package domain holds the canonical lead model and the enumerations the
// lifecycle engine and aggregators operate on.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is a lead's position in the sales funnel.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusNegotiation Status = "negotiation"
	StatusClosed      Status = "closed"
	StatusLost        Status = "lost"
)

// FunnelStages is the canonical forward order of the funnel. Lost is a side
// exit, not a stage, and never appears here.
var FunnelStages = []Status{StatusNew, StatusContacted, StatusNegotiation, StatusClosed}

// ValidStatuses contains every status token the engine accepts.
var ValidStatuses = map[Status]bool{
	StatusNew:         true,
	StatusContacted:   true,
	StatusNegotiation: true,
	StatusClosed:      true,
	StatusLost:        true,
}

// IsTerminal reports whether the status ends the funnel for
// conversion-counting purposes.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusLost
}

// StageIndex returns the position of the status in the canonical funnel
// order, or -1 for lost and unknown statuses.
func (s Status) StageIndex() int {
	for i, stage := range FunnelStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Source is the acquisition channel a lead came in through.
type Source string

const (
	SourceWebsite       Source = "website"
	SourceContactForm   Source = "contact_form"
	SourceEbookDownload Source = "ebook_download"
	SourceTrialSignup   Source = "trial_signup"
	SourceNewsletter    Source = "newsletter"
	SourceDemoRequest   Source = "demo_request"
)

// DefaultSource is applied when a lead arrives without a channel.
const DefaultSource = SourceWebsite

// ValidSources contains every acquisition channel the engine accepts.
var ValidSources = map[Source]bool{
	SourceWebsite:       true,
	SourceContactForm:   true,
	SourceEbookDownload: true,
	SourceTrialSignup:   true,
	SourceNewsletter:    true,
	SourceDemoRequest:   true,
}

// NoteType distinguishes plain annotations from actionable entries.
type NoteType string

const (
	NoteTypeNote     NoteType = "note"
	NoteTypeFollowUp NoteType = "follow_up"
	NoteTypeCall     NoteType = "call"
	NoteTypeEmail    NoteType = "email"
	NoteTypeMeeting  NoteType = "meeting"
)

// ValidNoteTypes contains every note type the engine accepts.
var ValidNoteTypes = map[NoteType]bool{
	NoteTypeNote:     true,
	NoteTypeFollowUp: true,
	NoteTypeCall:     true,
	NoteTypeEmail:    true,
	NoteTypeMeeting:  true,
}

// Score bounds. Scores outside this range are rejected before any write.
const (
	MinScore = 0
	MaxScore = 100
)

// Lead is a captured prospective customer.
type Lead struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Company      *string
	Phone        *string
	Message      *string
	Source       Source
	Score        int
	Status       Status
	CreatedAt    time.Time
	LastActivity time.Time
}

// Note is a freeform annotation or scheduled action attached to a lead.
// Notes are exclusively owned by their lead; the store cascades deletes.
type Note struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	Content      string
	NoteType     NoteType
	FollowUpDate *time.Time
	Completed    bool
	CreatedAt    time.Time
}

// SalesGoal is a per-calendar-month target, used only as a denominator for
// progress percentages.
type SalesGoal struct {
	ID              uuid.UUID
	Month           int
	Year            int
	LeadsGoal       int
	ConversionsGoal int
	RevenueGoal     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
