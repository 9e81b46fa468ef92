package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models/ojt"
	validators "ojtms/validators/ojt"
)

// CreateAssignment creates a scored task for a batch. Zero or negative
// max score never reaches the database; the validator rejects it.
func CreateAssignment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*validators.CreateAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch ojt.Batch
	if err := database.Database.Db.First(&batch, reqData.BatchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	assignment := ojt.Assignment{
		BatchID:     reqData.BatchID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Deadline:    reqData.ParsedDeadline,
		MaxScore:    reqData.MaxScore,
		Weight:      reqData.Weight,
		State:       ojt.AssignmentOpen,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// GetAssignments lists assignments, optionally filtered by batch
func GetAssignments(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&ojt.Assignment{})

	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		db = db.Where("batch_id = ?", batchID)
	}

	var assignments []ojt.Assignment
	if err := db.Order("deadline desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// SubmitAssignment records a participant's submission. One submission
// per (assignment, participant); duplicates are rejected.
func SubmitAssignment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmission").(*validators.SubmitAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var assignment ojt.Assignment
	if err := database.Database.Db.First(&assignment, reqData.AssignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}
	if assignment.State != ojt.AssignmentOpen {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment is not open for submissions!", nil)
	}

	var participant ojt.Participant
	if err := database.Database.Db.First(&participant, reqData.ParticipantID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Participant not found!", nil)
	}

	var existing ojt.Submission
	if err := database.Database.Db.
		Where("assignment_id = ? AND participant_id = ?", reqData.AssignmentID, reqData.ParticipantID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Participant already submitted this assignment!", existing)
	}

	now := time.Now()
	submission := ojt.Submission{
		AssignmentID:  reqData.AssignmentID,
		ParticipantID: reqData.ParticipantID,
		SubmittedOn:   now,
		URLLink:       reqData.URLLink,
		Late:          now.After(assignment.Deadline),
		State:         ojt.SubmissionSubmitted,
	}

	if err := database.Database.Db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Participant already submitted this assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// ScoreSubmission records the reviewer's score. Scores above the
// assignment's max score are rejected before anything is persisted.
func ScoreSubmission(c *fiber.Ctx) error {
	submissionID := c.Locals("submissionID").(uint)
	reqData, ok := c.Locals("validatedScore").(*validators.ScoreSubmissionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var submission ojt.Submission
	if err := database.Database.Db.First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	var assignment ojt.Assignment
	if err := database.Database.Db.First(&assignment, submission.AssignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if reqData.Score > assignment.MaxScore {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"score": "Score cannot exceed the assignment's max score!",
		})
	}

	if err := database.Database.Db.Model(&submission).Updates(map[string]interface{}{
		"score":    reqData.Score,
		"feedback": reqData.Feedback,
		"state":    ojt.SubmissionScored,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to score submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission scored successfully!", submission)
}
