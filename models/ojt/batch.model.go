package ojt

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Batch lifecycle states
const (
	BatchDraft      = "draft"
	BatchRecruiting = "recruiting"
	BatchOngoing    = "ongoing"
	BatchDone       = "done"
	BatchCancelled  = "cancelled"
)

// Batch is a cohort of trainees running over a fixed date range. Its
// thresholds gate certificate eligibility for its participants.
type Batch struct {
	gorm.Model
	Name             string         `json:"name" gorm:"not null"`
	StartDate        datatypes.Date `json:"start_date"`
	EndDate          datatypes.Date `json:"end_date"`
	MinAttendancePct float64        `json:"min_attendance_pct" gorm:"default:75" validate:"gte=0,lte=100"`
	MinScorePct      float64        `json:"min_score_pct" gorm:"default:70" validate:"gte=0,lte=100"`
	Status           string         `json:"status" gorm:"default:'draft'"` // draft, recruiting, ongoing, done, cancelled

	Participants []Participant `json:"participants,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
