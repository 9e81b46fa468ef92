package controllers

import (
	"github.com/gofiber/fiber/v2"

	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models"
	"ojtms/models/ojt"
	"ojtms/services"
	validators "ojtms/validators/ojt"
)

// CreateParticipant enrolls a participant in a batch. When an email is
// given, a portal user is provisioned alongside so the participant can
// later download their certificate.
func CreateParticipant(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedParticipant").(*validators.CreateParticipantRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch ojt.Batch
	if err := database.Database.Db.First(&batch, reqData.BatchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	participant := ojt.Participant{
		BatchID:    reqData.BatchID,
		Name:       reqData.Name,
		StudentID:  reqData.StudentID,
		Email:      reqData.Email,
		Phone:      reqData.Phone,
		Department: reqData.Department,
		Company:    reqData.Company,
		Mentor:     reqData.Mentor,
		Status:     ojt.ParticipantOngoing,
	}

	if reqData.Email != "" {
		var user models.User
		err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error
		if err != nil {
			user = models.User{Name: reqData.Name, Email: reqData.Email, Role: "PARTICIPANT"}
			if err := database.Database.Db.Create(&user).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to provision portal user!", nil)
			}
		}
		participant.UserID = &user.ID
	}

	if err := database.Database.Db.Create(&participant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create participant!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Participant created successfully!", participant)
}

// GetParticipants lists participants, optionally filtered by batch
func GetParticipants(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&ojt.Participant{})

	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		db = db.Where("batch_id = ?", batchID)
	}

	var participants []ojt.Participant
	if err := db.Order("created_at desc").Find(&participants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch participants!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Participants fetched successfully!", fiber.Map{
		"participants": participants,
		"total":        len(participants),
	})
}

// GetParticipantKPI computes the participant's live metrics from the
// current attendance and submission rows.
func GetParticipantKPI(c *fiber.Ctx) error {
	participantID := c.Locals("participantID").(uint)

	var participant ojt.Participant
	if err := database.Database.Db.First(&participant, participantID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Participant not found!", nil)
	}

	kpi, err := services.LoadParticipantKPI(database.Database.Db, participant)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute KPIs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "KPIs computed successfully!", fiber.Map{
		"participant_id": participant.ID,
		"name":           participant.Name,
		"status":         participant.Status,
		"kpi":            kpi,
		"grade":          services.GradeFor(kpi.FinalScore),
	})
}

// SetMentorScore records the mentor's grade for a participant
func SetMentorScore(c *fiber.Ctx) error {
	participantID := c.Locals("participantID").(uint)
	reqData, ok := c.Locals("validatedMentorScore").(*validators.SetMentorScoreRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var participant ojt.Participant
	if err := database.Database.Db.First(&participant, participantID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Participant not found!", nil)
	}

	if err := database.Database.Db.Model(&participant).Update("mentor_score", reqData.MentorScore).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update mentor score!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor score updated successfully!", participant)
}

// UpdateParticipantStatus moves a participant through its lifecycle
func UpdateParticipantStatus(c *fiber.Ctx) error {
	participantID := c.Locals("participantID").(uint)
	reqData, ok := c.Locals("validatedParticipantStatus").(*validators.UpdateParticipantStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var participant ojt.Participant
	if err := database.Database.Db.First(&participant, participantID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Participant not found!", nil)
	}

	if err := database.Database.Db.Model(&participant).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update participant status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Participant status updated successfully!", participant)
}
