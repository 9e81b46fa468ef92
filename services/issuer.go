package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ojtms/models/ojt"
)

// Renderer produces the certificate artifacts. A failure here is fatal
// to the issuance call; the certificate must never be marked issued
// without a stored PDF.
type Renderer interface {
	RenderQR(verifyURL string) ([]byte, error)
	RenderPDF(data RenderData) ([]byte, error)
}

// RenderData is the snapshot handed to the PDF renderer.
type RenderData struct {
	CertificateNo   string
	Serial          string
	ParticipantName string
	BatchName       string
	Grade           string
	FinalScore      float64
	AttendanceRate  float64
	IssueDate       time.Time
	QRImage         []byte
}

// Notifier delivers the issued certificate to the participant.
// Delivery is best-effort; implementations log failures instead of
// returning them.
type Notifier interface {
	NotifyIssued(cert ojt.Certificate, participant ojt.Participant)
}

// CertificateService runs the issuance workflow. Dependencies are
// injected explicitly so tests can swap the renderer and notifier.
type CertificateService struct {
	db       *gorm.DB
	renderer Renderer
	notifier Notifier
	baseURL  string
}

func NewCertificateService(db *gorm.DB, renderer Renderer, notifier Notifier, baseURL string) *CertificateService {
	return &CertificateService{db: db, renderer: renderer, notifier: notifier, baseURL: baseURL}
}

// VerifyURL is the address a QR scan resolves to for a given serial.
func (s *CertificateService) VerifyURL(serial string) string {
	return fmt.Sprintf("%s/api/v1/certificates/verify/%s", s.baseURL, serial)
}

// Issue runs the full issuance workflow for one participant:
// create-or-fetch the certificate with frozen KPI snapshot and serial,
// render the PDF, then atomically transition draft -> issued. It is
// idempotent: an already-issued certificate is returned unchanged, and
// the loser of a concurrent race observes the winner's record.
func (s *CertificateService) Issue(participantID uint) (*ojt.Certificate, error) {
	var participant ojt.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		return nil, fmt.Errorf("participant %d not found", participantID)
	}
	var batch ojt.Batch
	if err := s.db.First(&batch, participant.BatchID).Error; err != nil {
		return nil, err
	}

	cert, err := s.createOrFetch(participant, batch)
	if err != nil {
		return nil, err
	}
	if cert.State == ojt.CertificateIssued {
		return cert, nil
	}

	// Render outside the transaction; the draft above is already
	// committed, so a renderer failure leaves it retryable.
	qrImage, err := s.renderer.RenderQR(s.VerifyURL(cert.Serial))
	if err != nil {
		return nil, fmt.Errorf("certificate renderer failed: %w", err)
	}
	issueDate := time.Now()
	pdf, err := s.renderer.RenderPDF(RenderData{
		CertificateNo:   cert.CertificateNo,
		Serial:          cert.Serial,
		ParticipantName: cert.ParticipantName,
		BatchName:       cert.BatchName,
		Grade:           cert.Grade,
		FinalScore:      cert.FinalScore,
		AttendanceRate:  cert.AttendanceRate,
		IssueDate:       issueDate,
		QRImage:         qrImage,
	})
	if err != nil {
		return nil, fmt.Errorf("certificate renderer failed: %w", err)
	}

	issued, transitioned, err := s.markIssued(cert.ID, pdf, qrImage, issueDate)
	if err != nil {
		return nil, err
	}

	// Only the caller that actually performed the draft -> issued
	// transition notifies, so a raced issuance never sends twice.
	if transitioned && s.notifier != nil {
		s.notifier.NotifyIssued(*issued, participant)
	}
	return issued, nil
}

// createOrFetch returns the participant's certificate, creating a
// draft with frozen snapshot and a fresh serial when none exists. The
// unique index on participant_id is the authority when two calls race;
// the loser re-reads the winner's row.
func (s *CertificateService) createOrFetch(participant ojt.Participant, batch ojt.Batch) (*ojt.Certificate, error) {
	var cert ojt.Certificate

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("participant_id = ?", participant.ID).First(&cert).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		kpi, err := LoadParticipantKPI(tx, participant)
		if err != nil {
			return err
		}
		serial, err := s.newSerial(tx)
		if err != nil {
			return err
		}

		cert = ojt.Certificate{
			ParticipantID:   participant.ID,
			Serial:          serial,
			State:           ojt.CertificateDraft,
			FinalScore:      kpi.FinalScore,
			AttendanceRate:  kpi.AttendanceRatePct,
			Grade:           GradeFor(kpi.FinalScore),
			ParticipantName: participant.Name,
			BatchName:       batch.Name,
			MentorName:      participant.Mentor,
		}
		if err := tx.Create(&cert).Error; err != nil {
			return err
		}
		cert.CertificateNo = fmt.Sprintf("OJT/%d/%05d", time.Now().Year(), cert.ID)
		return tx.Model(&cert).Update("certificate_no", cert.CertificateNo).Error
	})
	if err != nil {
		// Concurrent duplicate: the constraint rejected us, the winner's
		// record must exist. Anything else is a real failure.
		var existing ojt.Certificate
		if fetchErr := s.db.Where("participant_id = ?", participant.ID).First(&existing).Error; fetchErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &cert, nil
}

// newSerial returns a fresh UUID serial. The store-level unique index
// is the real guarantee; this pre-check only avoids a wasted insert on
// the negligible collision case.
func (s *CertificateService) newSerial(tx *gorm.DB) (string, error) {
	for i := 0; i < 5; i++ {
		serial := uuid.NewString()
		var count int64
		if err := tx.Model(&ojt.Certificate{}).Where("serial = ?", serial).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return serial, nil
		}
	}
	return "", errors.New("could not generate a unique certificate serial")
}

// markIssued flips draft -> issued together with the PDF in one
// conditional update, so the transition commits exactly once even
// under concurrent issuance. The bool reports whether this caller
// performed the transition.
func (s *CertificateService) markIssued(certID uint, pdf, qrImage []byte, issueDate time.Time) (*ojt.Certificate, bool, error) {
	var cert ojt.Certificate
	transitioned := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cert, certID).Error; err != nil {
			return err
		}
		if cert.State == ojt.CertificateIssued {
			return nil
		}
		res := tx.Model(&ojt.Certificate{}).
			Where("id = ? AND state = ?", certID, ojt.CertificateDraft).
			Updates(map[string]interface{}{
				"state":        ojt.CertificateIssued,
				"issue_date":   datatypes.Date(issueDate),
				"pdf_file":     pdf,
				"pdf_filename": fmt.Sprintf("Certificate_%s.pdf", cert.Serial),
				"qr_image":     qrImage,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race; the other caller issued it.
			log.Printf("certificate %d already issued by a concurrent call", certID)
		} else {
			transitioned = true
		}
		return tx.First(&cert, certID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &cert, transitioned, nil
}

// EnsurePDF regenerates the document for an issued certificate whose
// blob is missing, rendering from the frozen snapshot only. The state
// and serial are never touched.
func (s *CertificateService) EnsurePDF(certID uint) (*ojt.Certificate, error) {
	var cert ojt.Certificate
	if err := s.db.First(&cert, certID).Error; err != nil {
		return nil, err
	}
	if cert.State != ojt.CertificateIssued {
		return nil, errors.New("certificate is not issued")
	}
	if len(cert.PDFFile) > 0 {
		return &cert, nil
	}

	qrImage, err := s.renderer.RenderQR(s.VerifyURL(cert.Serial))
	if err != nil {
		return nil, fmt.Errorf("certificate renderer failed: %w", err)
	}
	pdf, err := s.renderer.RenderPDF(RenderData{
		CertificateNo:   cert.CertificateNo,
		Serial:          cert.Serial,
		ParticipantName: cert.ParticipantName,
		BatchName:       cert.BatchName,
		Grade:           cert.Grade,
		FinalScore:      cert.FinalScore,
		AttendanceRate:  cert.AttendanceRate,
		IssueDate:       time.Time(cert.IssueDate),
		QRImage:         qrImage,
	})
	if err != nil {
		return nil, fmt.Errorf("certificate renderer failed: %w", err)
	}

	if err := s.db.Model(&cert).Updates(map[string]interface{}{
		"pdf_file":     pdf,
		"pdf_filename": fmt.Sprintf("Certificate_%s.pdf", cert.Serial),
		"qr_image":     qrImage,
	}).Error; err != nil {
		return nil, err
	}
	return &cert, s.db.First(&cert, certID).Error
}

// GenerateResult summarizes a batch-level generation run.
type GenerateResult struct {
	Issued   int             `json:"issued"`
	Skipped  int             `json:"skipped"`
	Failed   int             `json:"failed"`
	Failures map[uint]string `json:"failures,omitempty"`
}

// GenerateBatchCertificates issues certificates for every eligible
// participant of the batch. One participant's failure never aborts the
// rest; failures are collected per participant.
func (s *CertificateService) GenerateBatchCertificates(batchID uint) (GenerateResult, error) {
	result := GenerateResult{Failures: make(map[uint]string)}

	var batch ojt.Batch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		return result, fmt.Errorf("batch %d not found", batchID)
	}

	var total int64
	if err := s.db.Model(&ojt.Participant{}).
		Where("batch_id = ? AND status = ?", batchID, ojt.ParticipantCompleted).
		Count(&total).Error; err != nil {
		return result, err
	}

	eligible, _, err := EligibleParticipants(s.db, batch)
	if err != nil {
		return result, err
	}
	result.Skipped = int(total) - len(eligible)

	for _, p := range eligible {
		if _, err := s.Issue(p.ID); err != nil {
			result.Failed++
			result.Failures[p.ID] = err.Error()
			log.Printf("certificate generation failed for participant %d: %v", p.ID, err)
			continue
		}
		result.Issued++
	}
	return result, nil
}
