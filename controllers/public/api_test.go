package public

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ojtms/config"
	"ojtms/database"
	"ojtms/models/ojt"
)

func setup(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&ojt.Batch{}, &ojt.Participant{}, &ojt.Certificate{}); err != nil {
		t.Fatalf("setup() migration failed: %v", err)
	}
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		GraduatesDefaultLimit: 50,
		GraduatesMaxLimit:     500,
	}

	app := fiber.New()
	app.Get("/api/v1/certificates/verify/:serial", VerifyCertificate)
	app.Get("/api/v1/certificates/graduates", GetGraduates)
	app.Get("/ojt/cert/qr/:token", QRRedirect)
	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, path string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	return resp.StatusCode, env
}

func seedIssuedCert(t *testing.T, batchID uint, name, serial, grade string, score float64, issued time.Time) ojt.Certificate {
	t.Helper()
	db := database.Database.Db
	p := ojt.Participant{BatchID: batchID, Name: name, Status: ojt.ParticipantCompleted}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seedIssuedCert() participant: %v", err)
	}
	cert := ojt.Certificate{
		ParticipantID:   p.ID,
		CertificateNo:   fmt.Sprintf("OJT/2026/%05d", p.ID),
		Serial:          serial,
		State:           ojt.CertificateIssued,
		IssueDate:       datatypes.Date(issued),
		FinalScore:      score,
		Grade:           grade,
		ParticipantName: name,
		BatchName:       "Batch 2026-A",
	}
	if err := db.Create(&cert).Error; err != nil {
		t.Fatalf("seedIssuedCert() certificate: %v", err)
	}
	return cert
}

func seedBatch(t *testing.T, name string) ojt.Batch {
	t.Helper()
	batch := ojt.Batch{Name: name, Status: ojt.BatchDone}
	if err := database.Database.Db.Create(&batch).Error; err != nil {
		t.Fatalf("seedBatch() failed: %v", err)
	}
	return batch
}

func TestVerifyEndpoint(t *testing.T) {
	app := setup(t)
	batch := seedBatch(t, "Batch 2026-A")
	cert := seedIssuedCert(t, batch.ID, "Maya Putri", "serial-maya", "B", 86, time.Now())

	code, env := doRequest(t, app, "/api/v1/certificates/verify/"+cert.Serial)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)

	var result map[string]interface{}
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, true, result["valid"])
	assert.Equal(t, "Maya Putri", result["participant_name"])
	assert.Equal(t, "B", result["grade"])
}

func TestVerifyEndpointDraftMatchesUnknown(t *testing.T) {
	app := setup(t)
	batch := seedBatch(t, "Batch 2026-A")

	p := ojt.Participant{BatchID: batch.ID, Name: "Nadia", Status: ojt.ParticipantCompleted}
	assert.NoError(t, database.Database.Db.Create(&p).Error)
	draft := ojt.Certificate{ParticipantID: p.ID, Serial: "serial-draft", State: ojt.CertificateDraft}
	assert.NoError(t, database.Database.Db.Create(&draft).Error)

	draftCode, draftEnv := doRequest(t, app, "/api/v1/certificates/verify/serial-draft")
	unknownCode, unknownEnv := doRequest(t, app, "/api/v1/certificates/verify/serial-nothing")

	assert.Equal(t, http.StatusNotFound, draftCode)
	assert.Equal(t, unknownCode, draftCode)
	assert.Equal(t, unknownEnv.Message, draftEnv.Message)
	assert.False(t, draftEnv.Status)
}

func TestQRRedirect(t *testing.T) {
	app := setup(t)
	batch := seedBatch(t, "Batch 2026-A")
	cert := seedIssuedCert(t, batch.ID, "Oscar", "serial-oscar", "A", 92, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/ojt/cert/qr/"+cert.Serial, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/v1/certificates/verify/"+cert.Serial, resp.Header.Get("Location"))

	// An unknown token never redirects.
	req = httptest.NewRequest(http.MethodGet, "/ojt/cert/qr/serial-missing", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type graduatesPayload struct {
	Graduates []struct {
		CertificateNo   string  `json:"certificate_no"`
		ParticipantName string  `json:"participant_name"`
		Grade           string  `json:"grade"`
		FinalScore      float64 `json:"final_score"`
	} `json:"graduates"`
	Pagination struct {
		Total   int64 `json:"total"`
		Limit   int   `json:"limit"`
		Offset  int   `json:"offset"`
		HasMore bool  `json:"has_more"`
	} `json:"pagination"`
}

func decodeGraduates(t *testing.T, env envelope) graduatesPayload {
	t.Helper()
	var payload graduatesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode graduates payload: %v", err)
	}
	return payload
}

func TestGetGraduatesFilters(t *testing.T) {
	app := setup(t)
	batchA := seedBatch(t, "Batch 2026-A")
	batchB := seedBatch(t, "Batch 2026-B")

	seedIssuedCert(t, batchA.ID, "Putri", "serial-putri", "A", 92, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	seedIssuedCert(t, batchA.ID, "Qori", "serial-qori", "B", 84, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	seedIssuedCert(t, batchB.ID, "Rudi", "serial-rudi", "A", 95, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	// Drafts never appear in the listing.
	p := ojt.Participant{BatchID: batchA.ID, Name: "Sari", Status: ojt.ParticipantCompleted}
	assert.NoError(t, database.Database.Db.Create(&p).Error)
	draft := ojt.Certificate{ParticipantID: p.ID, Serial: "serial-sari", State: ojt.CertificateDraft}
	assert.NoError(t, database.Database.Db.Create(&draft).Error)

	code, env := doRequest(t, app, "/api/v1/certificates/graduates")
	assert.Equal(t, http.StatusOK, code)
	all := decodeGraduates(t, env)
	assert.EqualValues(t, 3, all.Pagination.Total)
	assert.Len(t, all.Graduates, 3)
	assert.False(t, all.Pagination.HasMore)

	_, env = doRequest(t, app, "/api/v1/certificates/graduates?grade=A")
	byGrade := decodeGraduates(t, env)
	assert.EqualValues(t, 2, byGrade.Pagination.Total)

	_, env = doRequest(t, app, fmt.Sprintf("/api/v1/certificates/graduates?batch_id=%d", batchB.ID))
	byBatch := decodeGraduates(t, env)
	if assert.Len(t, byBatch.Graduates, 1) {
		assert.Equal(t, "Rudi", byBatch.Graduates[0].ParticipantName)
	}

	_, env = doRequest(t, app, "/api/v1/certificates/graduates?start_date=2026-05-01")
	byDate := decodeGraduates(t, env)
	assert.EqualValues(t, 2, byDate.Pagination.Total)
}

func TestGetGraduatesPaginationClamp(t *testing.T) {
	app := setup(t)
	batch := seedBatch(t, "Batch 2026-A")
	for i := 0; i < 60; i++ {
		seedIssuedCert(t, batch.ID, fmt.Sprintf("Trainee %d", i),
			fmt.Sprintf("serial-%04d", i), "C", 75, time.Now())
	}

	// The default page size caps an unbounded request.
	_, env := doRequest(t, app, "/api/v1/certificates/graduates")
	page := decodeGraduates(t, env)
	assert.Len(t, page.Graduates, 50)
	assert.EqualValues(t, 60, page.Pagination.Total)
	assert.True(t, page.Pagination.HasMore)

	// A limit past the maximum is clamped, not rejected.
	_, env = doRequest(t, app, "/api/v1/certificates/graduates?limit=9999")
	clamped := decodeGraduates(t, env)
	assert.Equal(t, 500, clamped.Pagination.Limit)
	assert.Len(t, clamped.Graduates, 60)
	assert.False(t, clamped.Pagination.HasMore)

	// Negative values fall back to the defaults.
	_, env = doRequest(t, app, "/api/v1/certificates/graduates?limit=-5&offset=-10")
	fallback := decodeGraduates(t, env)
	assert.Equal(t, 50, fallback.Pagination.Limit)
	assert.Equal(t, 0, fallback.Pagination.Offset)

	// The second page picks up where the first stopped.
	_, env = doRequest(t, app, "/api/v1/certificates/graduates?offset=50")
	second := decodeGraduates(t, env)
	assert.Len(t, second.Graduates, 10)
	assert.False(t, second.Pagination.HasMore)
}
