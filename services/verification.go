package services

import (
	"time"

	"gorm.io/gorm"

	"ojtms/models/ojt"
)

// VerifyFailMessage is the single public outcome for both nonexistent
// and not-yet-issued serials, so probing cannot distinguish them.
const VerifyFailMessage = "Certificate not found or invalid"

// VerificationResult is the public-safe projection of a certificate.
// Every field comes from the issuance-time snapshot, never re-derived
// from the participant.
type VerificationResult struct {
	Valid           bool    `json:"valid"`
	CertificateNo   string  `json:"certificate_no,omitempty"`
	ParticipantName string  `json:"participant_name,omitempty"`
	BatchName       string  `json:"batch_name,omitempty"`
	IssueDate       string  `json:"issue_date,omitempty"`
	FinalScore      float64 `json:"final_score,omitempty"`
	Grade           string  `json:"grade,omitempty"`
	Serial          string  `json:"serial,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

// VerifyCertificate looks up a certificate by serial and returns its
// snapshot only when it has actually been issued.
func VerifyCertificate(db *gorm.DB, serial string) VerificationResult {
	if serial == "" {
		return VerificationResult{Valid: false, Reason: VerifyFailMessage}
	}

	var cert ojt.Certificate
	err := db.Where("serial = ? AND state = ?", serial, ojt.CertificateIssued).First(&cert).Error
	if err != nil {
		return VerificationResult{Valid: false, Reason: VerifyFailMessage}
	}

	return VerificationResult{
		Valid:           true,
		CertificateNo:   cert.CertificateNo,
		ParticipantName: cert.ParticipantName,
		BatchName:       cert.BatchName,
		IssueDate:       time.Time(cert.IssueDate).Format("2006-01-02"),
		FinalScore:      cert.FinalScore,
		Grade:           cert.Grade,
		Serial:          cert.Serial,
	}
}
