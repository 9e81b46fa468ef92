package ojtValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ojtms/middleware"
)

// CreateBatchRequest is the validated payload for batch creation.
type CreateBatchRequest struct {
	Name             string   `json:"name"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	MinAttendancePct *float64 `json:"min_attendance_pct" validate:"omitempty,gte=0,lte=100"`
	MinScorePct      *float64 `json:"min_score_pct" validate:"omitempty,gte=0,lte=100"`
}

// CreateBatch validates batch creation requests
func CreateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateBatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Batch name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Batch name must be at least 3 characters long!"
		}

		structErrors(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", reqData)
		return c.Next()
	}
}

// UpdateBatchStatusRequest carries a batch lifecycle transition.
type UpdateBatchStatusRequest struct {
	Status string `json:"status"`
}

var batchStatuses = map[string]bool{
	"draft": true, "recruiting": true, "ongoing": true, "done": true, "cancelled": true,
}

// UpdateBatchStatus validates batch status transitions
func UpdateBatchStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Batch ID")
		if !ok {
			return resp
		}

		reqData := new(UpdateBatchStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(reqData.Status)
		if !batchStatuses[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of draft, recruiting, ongoing, done, cancelled!",
			})
		}

		c.Locals("batchID", id)
		c.Locals("validatedBatchStatus", reqData)
		return c.Next()
	}
}

// BatchID validates the :id path parameter on batch routes
func BatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := paramID(c, "id", "Batch ID")
		if !ok {
			return resp
		}
		c.Locals("batchID", id)
		return c.Next()
	}
}
