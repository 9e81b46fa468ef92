package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ojtms/config"
	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models"
	"ojtms/models/ojt"
	"ojtms/services"
	validators "ojtms/validators/ojt"
)

type stubRenderer struct{}

func (stubRenderer) RenderQR(string) ([]byte, error) { return []byte("stub-png"), nil }

func (stubRenderer) RenderPDF(services.RenderData) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// setupTestApp wires a fresh in-memory store, the certificate service
// and the routes under test behind the real JWT middleware, mirroring
// the route registration in routers/.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("setupTestApp() failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("setupTestApp() failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&ojt.Batch{},
		&ojt.Participant{},
		&ojt.Event{},
		&ojt.Attendance{},
		&ojt.Assignment{},
		&ojt.Submission{},
		&ojt.Certificate{},
	); err != nil {
		t.Fatalf("setupTestApp() migration failed: %v", err)
	}

	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		PublicBaseURL: "http://localhost:3000",
	}
	InitServices(services.NewCertificateService(db, stubRenderer{}, nil, config.AppConfig.PublicBaseURL))

	app := fiber.New()
	app.Post("/event/attendance", middleware.JWTMiddleware, validators.RecordAttendance(), RecordAttendance)
	app.Put("/assignment/submission/:id/score", middleware.JWTMiddleware, validators.ScoreSubmission(), ScoreSubmission)
	app.Get("/certificate/download", middleware.JWTMiddleware, DownloadCertificate)
	app.Get("/user/certificate", middleware.JWTMiddleware, GetMyCertificate)
	return app
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("bearerFor() failed: %v", err)
	}
	return "Bearer " + token
}

func createUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func TestDownloadCertificateOwnerOnly(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	admin := createUser(t, "Admin", "admin@ojt.local", "ADMIN")

	batch := ojt.Batch{Name: "Batch 2026-A", Status: ojt.BatchDone}
	assert.NoError(t, db.Create(&batch).Error)

	owner := createUser(t, "Vina", "vina@ojt.local", "PARTICIPANT")
	ownerParticipant := ojt.Participant{
		BatchID: batch.ID, UserID: &owner.ID, Name: "Vina",
		Status: ojt.ParticipantCompleted,
	}
	assert.NoError(t, db.Create(&ownerParticipant).Error)

	// In the same batch but never certified.
	uncertified := createUser(t, "Wawan", "wawan@ojt.local", "PARTICIPANT")
	other := ojt.Participant{
		BatchID: batch.ID, UserID: &uncertified.ID, Name: "Wawan",
		Status: ojt.ParticipantCompleted,
	}
	assert.NoError(t, db.Create(&other).Error)

	cert, err := CertService.Issue(ownerParticipant.ID)
	assert.NoError(t, err)
	assert.Equal(t, ojt.CertificateIssued, cert.State)

	// The owner gets their PDF.
	resp := doJSON(t, app, http.MethodGet, "/certificate/download", bearerFor(t, owner), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	// Someone else's identity answers 404, never 403.
	resp = doJSON(t, app, http.MethodGet, "/certificate/download", bearerFor(t, admin), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A participant without a certificate also answers 404.
	resp = doJSON(t, app, http.MethodGet, "/certificate/download", bearerFor(t, uncertified), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No token at all never reaches the handler.
	resp = doJSON(t, app, http.MethodGet, "/certificate/download", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMyCertificate(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	batch := ojt.Batch{Name: "Batch 2026-A", Status: ojt.BatchDone}
	assert.NoError(t, db.Create(&batch).Error)
	owner := createUser(t, "Yani", "yani@ojt.local", "PARTICIPANT")
	p := ojt.Participant{BatchID: batch.ID, UserID: &owner.ID, Name: "Yani", Status: ojt.ParticipantCompleted}
	assert.NoError(t, db.Create(&p).Error)

	cert, err := CertService.Issue(p.ID)
	assert.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/user/certificate", bearerFor(t, owner), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Status bool `json:"status"`
		Data   struct {
			CertificateNo string `json:"certificate_no"`
			Serial        string `json:"serial"`
			Grade         string `json:"grade"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Status)
	assert.Equal(t, cert.CertificateNo, env.Data.CertificateNo)
	assert.Equal(t, cert.Serial, env.Data.Serial)
}

func TestScoreSubmissionRejectsAboveMax(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	admin := createUser(t, "Admin", "admin@ojt.local", "ADMIN")

	batch := ojt.Batch{Name: "Batch 2026-A", Status: ojt.BatchOngoing}
	assert.NoError(t, db.Create(&batch).Error)
	assignment := ojt.Assignment{
		BatchID: batch.ID, Title: "Field Report",
		Deadline: time.Now().Add(24 * time.Hour),
		MaxScore: 50, Weight: 1, State: ojt.AssignmentOpen,
	}
	assert.NoError(t, db.Create(&assignment).Error)
	p := ojt.Participant{BatchID: batch.ID, Name: "Zaki", Status: ojt.ParticipantOngoing}
	assert.NoError(t, db.Create(&p).Error)
	submission := ojt.Submission{
		AssignmentID: assignment.ID, ParticipantID: p.ID,
		SubmittedOn: time.Now(), State: ojt.SubmissionSubmitted,
	}
	assert.NoError(t, db.Create(&submission).Error)

	path := fmt.Sprintf("/assignment/submission/%d/score", submission.ID)

	// Above the assignment's max score: rejected, nothing persisted.
	resp := doJSON(t, app, http.MethodPut, path, bearerFor(t, admin),
		map[string]interface{}{"score": 60})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var unchanged ojt.Submission
	assert.NoError(t, db.First(&unchanged, submission.ID).Error)
	assert.Equal(t, ojt.SubmissionSubmitted, unchanged.State)
	assert.Nil(t, unchanged.Score)

	// At the max score: accepted and stored.
	resp = doJSON(t, app, http.MethodPut, path, bearerFor(t, admin),
		map[string]interface{}{"score": 50, "feedback": "Solid work"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var scored ojt.Submission
	assert.NoError(t, db.First(&scored, submission.ID).Error)
	assert.Equal(t, ojt.SubmissionScored, scored.State)
	if assert.NotNil(t, scored.Score) {
		assert.Equal(t, 50.0, *scored.Score)
	}
}

func TestRecordAttendanceDuplicate(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	admin := createUser(t, "Admin", "admin@ojt.local", "ADMIN")

	batch := ojt.Batch{Name: "Batch 2026-A", Status: ojt.BatchOngoing}
	assert.NoError(t, db.Create(&batch).Error)
	event := ojt.Event{BatchID: batch.ID, Name: "Site Visit", Mandatory: true, Status: ojt.EventOngoing}
	assert.NoError(t, db.Create(&event).Error)
	p := ojt.Participant{BatchID: batch.ID, Name: "Agus", Status: ojt.ParticipantOngoing}
	assert.NoError(t, db.Create(&p).Error)

	body := map[string]interface{}{
		"participant_id": p.ID,
		"event_id":       event.ID,
		"presence":       "present",
	}

	resp := doJSON(t, app, http.MethodPost, "/event/attendance", bearerFor(t, admin), body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// The same (participant, event) pair again is a conflict.
	resp = doJSON(t, app, http.MethodPost, "/event/attendance", bearerFor(t, admin), body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&ojt.Attendance{}).
		Where("participant_id = ? AND event_id = ?", p.ID, event.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordAttendanceBatchMismatch(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	admin := createUser(t, "Admin", "admin@ojt.local", "ADMIN")

	batchA := ojt.Batch{Name: "Batch 2026-A", Status: ojt.BatchOngoing}
	batchB := ojt.Batch{Name: "Batch 2026-B", Status: ojt.BatchOngoing}
	assert.NoError(t, db.Create(&batchA).Error)
	assert.NoError(t, db.Create(&batchB).Error)
	event := ojt.Event{BatchID: batchA.ID, Name: "Workshop", Mandatory: true}
	assert.NoError(t, db.Create(&event).Error)
	p := ojt.Participant{BatchID: batchB.ID, Name: "Bayu", Status: ojt.ParticipantOngoing}
	assert.NoError(t, db.Create(&p).Error)

	resp := doJSON(t, app, http.MethodPost, "/event/attendance", bearerFor(t, admin),
		map[string]interface{}{
			"participant_id": p.ID,
			"event_id":       event.ID,
		})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
