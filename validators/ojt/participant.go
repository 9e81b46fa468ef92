package ojtValidator

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ojtms/middleware"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateParticipantRequest is the validated payload for enrolling a
// participant in a batch.
type CreateParticipantRequest struct {
	BatchID    uint   `json:"batch_id" validate:"required"`
	Name       string `json:"name"`
	StudentID  string `json:"student_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Company    string `json:"company"`
	Mentor     string `json:"mentor"`
}

// CreateParticipant validates participant enrollment requests
func CreateParticipant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateParticipantRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(reqData.Email)

		if reqData.Name == "" {
			errors["name"] = "Participant name is required!"
		}
		if reqData.Email != "" && !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Please enter a valid email address!"
		}

		structErrors(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedParticipant", reqData)
		return c.Next()
	}
}

// ParticipantID validates the :id path parameter on participant routes
func ParticipantID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Participant ID")
		if !ok {
			return resp
		}
		c.Locals("participantID", id)
		return c.Next()
	}
}

// SetMentorScoreRequest carries the mentor's grade for a participant.
type SetMentorScoreRequest struct {
	MentorScore float64 `json:"mentor_score" validate:"gte=0,lte=100"`
}

// SetMentorScore validates mentor score updates
func SetMentorScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Participant ID")
		if !ok {
			return resp
		}

		reqData := new(SetMentorScoreRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		structErrors(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("participantID", id)
		c.Locals("validatedMentorScore", reqData)
		return c.Next()
	}
}

// UpdateParticipantStatusRequest carries a participant status change.
type UpdateParticipantStatusRequest struct {
	Status string `json:"status"`
}

var participantStatuses = map[string]bool{
	"ongoing": true, "completed": true, "dropped": true,
}

// UpdateParticipantStatus validates participant status transitions
func UpdateParticipantStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Participant ID")
		if !ok {
			return resp
		}

		reqData := new(UpdateParticipantStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(reqData.Status)
		if !participantStatuses[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of ongoing, completed, dropped!",
			})
		}

		c.Locals("participantID", id)
		c.Locals("validatedParticipantStatus", reqData)
		return c.Next()
	}
}
