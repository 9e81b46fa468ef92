package ojt

import (
	"time"

	"gorm.io/gorm"
)

// Assignment states
const (
	AssignmentDraft  = "draft"
	AssignmentOpen   = "open"
	AssignmentClosed = "closed"
)

// Assignment is a scored task for a batch. MaxScore and Weight feed
// the normalized score computation; both must be positive, which is
// enforced at creation so the aggregation never divides by zero.
type Assignment struct {
	gorm.Model
	BatchID     uint      `json:"batch_id" gorm:"index;not null"`
	Batch       Batch     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	MaxScore    float64   `json:"max_score" gorm:"default:100" validate:"gt=0"`
	Weight      float64   `json:"weight" gorm:"default:1" validate:"gt=0"`
	State       string    `json:"state" gorm:"default:'open'"` // draft, open, closed
}
