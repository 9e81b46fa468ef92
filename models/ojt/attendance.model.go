package ojt

import (
	"time"

	"gorm.io/gorm"
)

// Presence values
const (
	PresencePresent = "present"
	PresenceLate    = "late"
	PresenceAbsent  = "absent"
	PresenceExcused = "excused"
)

// Attendance records one participant's presence at one event. The
// composite unique index enforces a single record per pair.
type Attendance struct {
	gorm.Model
	ParticipantID uint        `json:"participant_id" gorm:"not null;uniqueIndex:idx_attendance_participant_event"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EventID       uint        `json:"event_id" gorm:"not null;uniqueIndex:idx_attendance_participant_event"`
	Event         Event       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Presence      string      `json:"presence" gorm:"default:'present'"` // present, late, absent, excused
	CheckIn       *time.Time  `json:"check_in"`
	CheckOut      *time.Time  `json:"check_out"`
	Remarks       string      `json:"remarks"`
}
