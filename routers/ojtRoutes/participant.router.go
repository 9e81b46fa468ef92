package ojtRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "ojtms/controllers/ojt"
	"ojtms/middleware"
	validators "ojtms/validators/ojt"
)

// SetupParticipantRoutes sets up participant administration routes
func SetupParticipantRoutes(app *fiber.App) {
	group := app.Group("/participant")

	group.Post("/", middleware.JWTMiddleware, validators.CreateParticipant(), controllers.CreateParticipant)
	group.Get("/list", middleware.JWTMiddleware, controllers.GetParticipants)
	group.Get("/:id/kpi", middleware.JWTMiddleware, validators.ParticipantID(), controllers.GetParticipantKPI)
	group.Get("/:id/attendance", middleware.JWTMiddleware, validators.ParticipantID(), controllers.GetAttendance)
	group.Put("/:id/mentor-score", middleware.JWTMiddleware, validators.SetMentorScore(), controllers.SetMentorScore)
	group.Put("/:id/status", middleware.JWTMiddleware, validators.UpdateParticipantStatus(), controllers.UpdateParticipantStatus)

	// Single-participant issuance (also the retry path after a renderer failure)
	group.Post("/:id/certificate/issue", middleware.JWTMiddleware, validators.ParticipantID(), controllers.IssueCertificate)
}
