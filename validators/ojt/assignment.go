package ojtValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"ojtms/middleware"
)

// CreateAssignmentRequest is the validated payload for a new
// assignment. MaxScore and Weight must be positive so the score
// normalization can never divide by zero.
type CreateAssignmentRequest struct {
	BatchID     uint    `json:"batch_id" validate:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    string  `json:"deadline"` // RFC 3339
	MaxScore    float64 `json:"max_score" validate:"gt=0"`
	Weight      float64 `json:"weight" validate:"gt=0"`

	ParsedDeadline time.Time `json:"-"`
}

// CreateAssignment validates assignment creation requests
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Assignment title is required!"
		}

		if reqData.MaxScore == 0 {
			reqData.MaxScore = 100
		}
		if reqData.Weight == 0 {
			reqData.Weight = 1
		}

		if reqData.Deadline == "" {
			errors["deadline"] = "Deadline is required!"
		} else if parsed, err := time.Parse(time.RFC3339, reqData.Deadline); err != nil {
			errors["deadline"] = "Deadline must be a valid RFC 3339 timestamp!"
		} else if parsed.Before(time.Now()) {
			errors["deadline"] = "Deadline cannot be in the past!"
		} else {
			reqData.ParsedDeadline = parsed
		}

		structErrors(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// SubmitAssignmentRequest is a participant's submission payload.
type SubmitAssignmentRequest struct {
	AssignmentID  uint   `json:"assignment_id" validate:"required"`
	ParticipantID uint   `json:"participant_id" validate:"required"`
	URLLink       string `json:"url_link"`
}

// SubmitAssignment validates submission requests
func SubmitAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAssignmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		structErrors(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// ScoreSubmissionRequest carries a reviewer's score for a submission.
// The upper bound against the assignment's max score is checked in the
// controller where the assignment row is available.
type ScoreSubmissionRequest struct {
	Score    float64 `json:"score" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}

// ScoreSubmission validates scoring requests
func ScoreSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Submission ID")
		if !ok {
			return resp
		}

		reqData := new(ScoreSubmissionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		structErrors(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("submissionID", id)
		c.Locals("validatedScore", reqData)
		return c.Next()
	}
}
