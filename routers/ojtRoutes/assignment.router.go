package ojtRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "ojtms/controllers/ojt"
	"ojtms/middleware"
	validators "ojtms/validators/ojt"
)

// SetupAssignmentRoutes sets up assignment and submission routes
func SetupAssignmentRoutes(app *fiber.App) {
	group := app.Group("/assignment")

	group.Post("/", middleware.JWTMiddleware, validators.CreateAssignment(), controllers.CreateAssignment)
	group.Get("/list", middleware.JWTMiddleware, controllers.GetAssignments)
	group.Post("/submit", middleware.JWTMiddleware, validators.SubmitAssignment(), controllers.SubmitAssignment)
	group.Put("/submission/:id/score", middleware.JWTMiddleware, validators.ScoreSubmission(), controllers.ScoreSubmission)
}

// SetupEventRoutes sets up event and attendance routes
func SetupEventRoutes(app *fiber.App) {
	group := app.Group("/event")

	group.Post("/", middleware.JWTMiddleware, validators.CreateEvent(), controllers.CreateEvent)
	group.Get("/list", middleware.JWTMiddleware, controllers.GetEvents)
	group.Post("/attendance", middleware.JWTMiddleware, validators.RecordAttendance(), controllers.RecordAttendance)
}

// SetupCertificateRoutes sets up certificate administration and
// participant-facing certificate routes
func SetupCertificateRoutes(app *fiber.App) {
	group := app.Group("/certificate")

	group.Get("/list", middleware.JWTMiddleware, controllers.GetCertificates)
	group.Get("/download", middleware.JWTMiddleware, controllers.DownloadCertificate)

	userGroup := app.Group("/user")
	userGroup.Get("/certificate", middleware.JWTMiddleware, controllers.GetMyCertificate)
}
