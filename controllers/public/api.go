package public

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ojtms/config"
	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models/ojt"
	"ojtms/services"
)

// VerifyCertificate answers public authenticity checks by serial.
// Draft and nonexistent serials yield the identical response so the
// endpoint cannot be used to enumerate participants.
func VerifyCertificate(c *fiber.Ctx) error {
	serial := c.Params("serial")

	result := services.VerifyCertificate(database.Database.Db, serial)
	if !result.Valid {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, services.VerifyFailMessage, result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate "+serial+" is valid", result)
}

// QRRedirect resolves a scanned QR token to the verification endpoint.
func QRRedirect(c *fiber.Ctx) error {
	serial := c.Params("token")

	var cert ojt.Certificate
	err := database.Database.Db.
		Where("serial = ? AND state = ?", serial, ojt.CertificateIssued).
		First(&cert).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, services.VerifyFailMessage, nil)
	}

	return c.Redirect("/api/v1/certificates/verify/"+cert.Serial, fiber.StatusFound)
}

// graduateEntry is the public-safe projection of an issued certificate.
type graduateEntry struct {
	CertificateNo   string  `json:"certificate_no"`
	ParticipantName string  `json:"participant_name"`
	BatchName       string  `json:"batch_name"`
	IssueDate       string  `json:"issue_date"`
	FinalScore      float64 `json:"final_score"`
	Grade           string  `json:"grade"`
	MentorName      string  `json:"mentor_name,omitempty"`
}

// GetGraduates lists issued certificates with optional filters and
// pagination. Out-of-range limit/offset values are clamped, not
// rejected.
func GetGraduates(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", config.AppConfig.GraduatesDefaultLimit)
	if limit > config.AppConfig.GraduatesMaxLimit {
		limit = config.AppConfig.GraduatesMaxLimit
	}
	if limit < 1 {
		limit = config.AppConfig.GraduatesDefaultLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.Database.Db.Model(&ojt.Certificate{}).Where("state = ?", ojt.CertificateIssued)

	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		db = db.Where("participant_id IN (SELECT id FROM participants WHERE batch_id = ?)", batchID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			db = db.Where("issue_date >= ?", parsed)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			db = db.Where("issue_date <= ?", parsed)
		}
	}
	if grade := c.Query("grade"); grade != "" {
		db = db.Where("grade = ?", grade)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch graduates!", nil)
	}

	var certificates []ojt.Certificate
	if err := db.Order("issue_date desc").Offset(offset).Limit(limit).Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch graduates!", nil)
	}

	graduates := make([]graduateEntry, len(certificates))
	for i, cert := range certificates {
		graduates[i] = graduateEntry{
			CertificateNo:   cert.CertificateNo,
			ParticipantName: cert.ParticipantName,
			BatchName:       cert.BatchName,
			IssueDate:       time.Time(cert.IssueDate).Format("2006-01-02"),
			FinalScore:      cert.FinalScore,
			Grade:           cert.Grade,
			MentorName:      cert.MentorName,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Graduates fetched successfully!", fiber.Map{
		"graduates": graduates,
		"pagination": fiber.Map{
			"total":    total,
			"limit":    limit,
			"offset":   offset,
			"has_more": int64(offset+limit) < total,
		},
	})
}
