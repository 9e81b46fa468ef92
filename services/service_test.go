package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ojtms/models/ojt"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("setupTestDB() failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("setupTestDB() failed: %v", err)
	}
	// In-memory sqlite is per connection; keep everything on one.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&ojt.Batch{},
		&ojt.Participant{},
		&ojt.Event{},
		&ojt.Attendance{},
		&ojt.Assignment{},
		&ojt.Submission{},
		&ojt.Certificate{},
	); err != nil {
		t.Fatalf("setupTestDB() migration failed: %v", err)
	}
	return db
}

func modelWithID(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func createBatch(t *testing.T, db *gorm.DB, name string, minAtt, minScore float64) ojt.Batch {
	t.Helper()
	batch := ojt.Batch{
		Name:             name,
		MinAttendancePct: minAtt,
		MinScorePct:      minScore,
		Status:           ojt.BatchDone,
	}
	if err := db.Create(&batch).Error; err != nil {
		t.Fatalf("createBatch() failed: %v", err)
	}
	// GORM skips zero-valued fields on insert, letting the column
	// defaults (75/70) override zero thresholds; force the exact values.
	if err := db.Model(&batch).Updates(map[string]interface{}{
		"min_attendance_pct": minAtt,
		"min_score_pct":      minScore,
	}).Error; err != nil {
		t.Fatalf("createBatch() failed: %v", err)
	}
	batch.MinAttendancePct = minAtt
	batch.MinScorePct = minScore
	return batch
}

func createParticipant(t *testing.T, db *gorm.DB, batchID uint, name, status string) ojt.Participant {
	t.Helper()
	p := ojt.Participant{BatchID: batchID, Name: name, Status: status}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("createParticipant() failed: %v", err)
	}
	return p
}

func createEvent(t *testing.T, db *gorm.DB, batchID uint, name string, mandatory bool) ojt.Event {
	t.Helper()
	ev := ojt.Event{BatchID: batchID, Name: name, Mandatory: mandatory, Status: ojt.EventDone}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("createEvent() failed: %v", err)
	}
	return ev
}

func createAttendance(t *testing.T, db *gorm.DB, participantID, eventID uint, presence string) {
	t.Helper()
	att := ojt.Attendance{ParticipantID: participantID, EventID: eventID, Presence: presence}
	if err := db.Create(&att).Error; err != nil {
		t.Fatalf("createAttendance() failed: %v", err)
	}
}

func createAssignment(t *testing.T, db *gorm.DB, batchID uint, title string, maxScore, weight float64) ojt.Assignment {
	t.Helper()
	a := ojt.Assignment{
		BatchID:  batchID,
		Title:    title,
		Deadline: time.Now().Add(24 * time.Hour),
		MaxScore: maxScore,
		Weight:   weight,
		State:    ojt.AssignmentOpen,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return a
}

func createScoredSubmission(t *testing.T, db *gorm.DB, assignmentID, participantID uint, score float64) {
	t.Helper()
	sub := ojt.Submission{
		AssignmentID:  assignmentID,
		ParticipantID: participantID,
		SubmittedOn:   time.Now(),
		Score:         &score,
		State:         ojt.SubmissionScored,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("createScoredSubmission() failed: %v", err)
	}
}

// stubRenderer swaps real PDF/QR generation for canned bytes and can
// be flipped into a failing mode. onRenderPDF, when set, fires once
// before the first PDF render so a test can interleave work at the
// point where issuance is outside any transaction.
type stubRenderer struct {
	mu          sync.Mutex
	fail        bool
	calls       int
	onRenderPDF func()
}

func (r *stubRenderer) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *stubRenderer) RenderQR(verifyURL string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("qr renderer down")
	}
	return []byte("qr:" + verifyURL), nil
}

func (r *stubRenderer) RenderPDF(data RenderData) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("pdf renderer down")
	}
	if r.onRenderPDF != nil {
		hook := r.onRenderPDF
		r.onRenderPDF = nil
		hook()
	}
	r.calls++
	return []byte("pdf:" + data.Serial), nil
}

// recordingNotifier remembers every issued certificate it was told
// about.
type recordingNotifier struct {
	mu     sync.Mutex
	issued []string
}

func (n *recordingNotifier) NotifyIssued(cert ojt.Certificate, participant ojt.Participant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.issued = append(n.issued, cert.Serial)
}

func newTestService(t *testing.T, db *gorm.DB) (*CertificateService, *stubRenderer, *recordingNotifier) {
	t.Helper()
	renderer := &stubRenderer{}
	notifier := &recordingNotifier{}
	return NewCertificateService(db, renderer, notifier, "http://localhost:3000"), renderer, notifier
}
