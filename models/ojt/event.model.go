package ojt

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event statuses
const (
	EventPlanned = "planned"
	EventOngoing = "ongoing"
	EventDone    = "done"
)

// Event is a scheduled batch activity (session, workshop, site visit).
// Only mandatory events count toward the attendance rate denominator.
type Event struct {
	gorm.Model
	BatchID    uint           `json:"batch_id" gorm:"index;not null"`
	Batch      Batch          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name       string         `json:"name" gorm:"not null"`
	EventDate  datatypes.Date `json:"event_date"`
	Supervisor string         `json:"supervisor"`
	Mandatory  bool           `json:"mandatory" gorm:"default:true"`
	Status     string         `json:"status" gorm:"default:'planned'"` // planned, ongoing, done
}
