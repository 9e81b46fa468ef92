package ojt

import (
	"time"

	"gorm.io/gorm"
)

// Submission states
const (
	SubmissionSubmitted = "submitted"
	SubmissionScored    = "scored"
)

// Submission is one participant's answer to one assignment, at most
// one per (assignment, participant) pair.
type Submission struct {
	gorm.Model
	AssignmentID  uint        `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_participant"`
	Assignment    Assignment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ParticipantID uint        `json:"participant_id" gorm:"not null;uniqueIndex:idx_submission_assignment_participant"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SubmittedOn   time.Time   `json:"submitted_on"`
	URLLink       string      `json:"url_link"`
	Score         *float64    `json:"score"` // set when scored; never exceeds Assignment.MaxScore
	Feedback      string      `json:"feedback"`
	Late          bool        `json:"late" gorm:"default:false"`
	State         string      `json:"state" gorm:"default:'submitted'"` // submitted, scored
}
