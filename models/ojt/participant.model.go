package ojt

import "gorm.io/gorm"

// Participant statuses
const (
	ParticipantOngoing   = "ongoing"
	ParticipantCompleted = "completed"
	ParticipantDropped   = "dropped"
)

// Participant is a trainee enrolled in a batch. Attendance rate and
// final score are never stored here; they are derived on demand from
// the attendance and submission child rows.
type Participant struct {
	gorm.Model
	BatchID    uint   `json:"batch_id" gorm:"index;not null"`
	Batch      Batch  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID     *uint  `json:"user_id" gorm:"index"` // portal identity, set once an account exists
	Name       string `json:"name" gorm:"not null"`
	StudentID  string `json:"student_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Company    string `json:"company"`
	Mentor     string `json:"mentor"`

	// MentorScore stays nil until the mentor has graded; the KPI blend
	// only applies once it is set.
	MentorScore *float64 `json:"mentor_score" validate:"omitempty,gte=0,lte=100"`
	Status      string   `json:"status" gorm:"default:'ongoing'"` // ongoing, completed, dropped
}
