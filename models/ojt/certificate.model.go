package ojt

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate states
const (
	CertificateDraft  = "draft"
	CertificateIssued = "issued"
)

// Certificate is the completion certificate for a participant, at most
// one per participant. The score, attendance, grade and name fields
// are frozen copies taken at creation; the public verification
// endpoint reads only these snapshots so an issued certificate never
// drifts when the participant's later activity changes their KPIs.
type Certificate struct {
	gorm.Model
	ParticipantID uint        `json:"participant_id" gorm:"uniqueIndex;not null"`
	Participant   Participant `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	// CertificateNo is the human-facing number printed on the document.
	// Serial is the opaque verification token embedded in the QR code;
	// it is assigned exactly once and never rewritten.
	CertificateNo string `json:"certificate_no" gorm:"uniqueIndex"`
	Serial        string `json:"serial" gorm:"uniqueIndex;not null"`

	IssueDate datatypes.Date `json:"issue_date"`
	State     string         `json:"state" gorm:"default:'draft'"` // draft, issued

	// KPI snapshot at creation time
	FinalScore      float64 `json:"final_score"`
	AttendanceRate  float64 `json:"attendance_rate"`
	Grade           string  `json:"grade"`
	ParticipantName string  `json:"participant_name"`
	BatchName       string  `json:"batch_name"`
	MentorName      string  `json:"mentor_name"`
	Remarks         string  `json:"remarks"`

	PDFFile     []byte `json:"-"`
	PDFFilename string `json:"pdf_filename"`
	QRImage     []byte `json:"-"`
}
