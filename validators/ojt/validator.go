package ojtValidator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ojtms/middleware"
)

var validate = validator.New()

// structErrors runs the validator/v10 tag rules and flattens the
// result into the field->message map the response envelope expects.
func structErrors(s interface{}, errs map[string]string) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["request"] = "Invalid request data!"
		return
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[field] = "This field is required!"
		case "gte", "lte", "gt", "lt":
			errs[field] = "Value out of range!"
		default:
			errs[field] = "Invalid value!"
		}
	}
}

// paramID parses a positive integer path parameter, replying with a
// 400 itself when the value is unusable.
func paramID(c *fiber.Ctx, name, label string) (uint, bool, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}
	return uint(id), true, nil
}
