package controllers

import (
	"github.com/gofiber/fiber/v2"

	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models/ojt"
)

// IssueCertificate runs the issuance workflow for one participant.
// Re-invoking on an issued certificate is a successful no-op; a
// renderer failure leaves the draft in place and surfaces the cause
// to the operator.
func IssueCertificate(c *fiber.Ctx) error {
	participantID := c.Locals("participantID").(uint)

	cert, err := CertService.Issue(participantID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", cert)
}

// GetCertificates lists certificates for administration
func GetCertificates(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&ojt.Certificate{})

	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		db = db.Where("participant_id IN (SELECT id FROM participants WHERE batch_id = ?)", batchID)
	}
	if state := c.Query("state"); state != "" {
		db = db.Where("state = ?", state)
	}

	var certificates []ojt.Certificate
	if err := db.Order("issue_date desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}

// DownloadCertificate streams the caller's own certificate PDF. Every
// failure mode answers 404 so probing cannot distinguish "not yours"
// from "does not exist". The PDF is rendered on demand when missing.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return fiber.ErrNotFound
	}

	var participant ojt.Participant
	if err := database.Database.Db.Where("user_id = ?", userID).First(&participant).Error; err != nil {
		return fiber.ErrNotFound
	}

	var cert ojt.Certificate
	if err := database.Database.Db.
		Where("participant_id = ? AND state = ?", participant.ID, ojt.CertificateIssued).
		First(&cert).Error; err != nil {
		return fiber.ErrNotFound
	}

	if len(cert.PDFFile) == 0 {
		refreshed, err := CertService.EnsurePDF(cert.ID)
		if err != nil || len(refreshed.PDFFile) == 0 {
			return fiber.ErrNotFound
		}
		cert = *refreshed
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+cert.PDFFilename+`"`)
	return c.Send(cert.PDFFile)
}

// GetMyCertificate returns the caller's certificate metadata
func GetMyCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var participant ojt.Participant
	if err := database.Database.Db.Where("user_id = ?", userID).First(&participant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate found!", nil)
	}

	var cert ojt.Certificate
	if err := database.Database.Db.
		Where("participant_id = ? AND state = ?", participant.ID, ojt.CertificateIssued).
		First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate_no":  cert.CertificateNo,
		"serial":          cert.Serial,
		"issue_date":      cert.IssueDate,
		"grade":           cert.Grade,
		"final_score":     cert.FinalScore,
		"attendance_rate": cert.AttendanceRate,
		"batch_name":      cert.BatchName,
		"pdf_filename":    cert.PDFFilename,
	})
}
