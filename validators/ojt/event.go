package ojtValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ojtms/middleware"
)

// CreateEventRequest is the validated payload for a batch event.
type CreateEventRequest struct {
	BatchID    uint   `json:"batch_id" validate:"required"`
	Name       string `json:"name"`
	EventDate  string `json:"event_date"`
	Supervisor string `json:"supervisor"`
	Mandatory  *bool  `json:"mandatory"`
}

// CreateEvent validates event creation requests
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateEventRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Event name is required!"
		}

		structErrors(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// RecordAttendanceRequest marks one participant's presence at an event.
type RecordAttendanceRequest struct {
	ParticipantID uint   `json:"participant_id" validate:"required"`
	EventID       uint   `json:"event_id" validate:"required"`
	Presence      string `json:"presence"`
	Remarks       string `json:"remarks"`
}

var presenceValues = map[string]bool{
	"present": true, "late": true, "absent": true, "excused": true,
}

// RecordAttendance validates attendance recording requests
func RecordAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RecordAttendanceRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Presence = strings.TrimSpace(reqData.Presence)
		if reqData.Presence == "" {
			reqData.Presence = "present"
		} else if !presenceValues[reqData.Presence] {
			errors["presence"] = "Presence must be one of present, late, absent, excused!"
		}

		structErrors(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		return c.Next()
	}
}
