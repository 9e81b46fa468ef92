package ojtRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "ojtms/controllers/ojt"
	"ojtms/middleware"
	validators "ojtms/validators/ojt"
)

// SetupBatchRoutes sets up batch administration routes
func SetupBatchRoutes(app *fiber.App) {
	batchGroup := app.Group("/batch")

	batchGroup.Post("/", middleware.JWTMiddleware, validators.CreateBatch(), controllers.CreateBatch)
	batchGroup.Get("/list", middleware.JWTMiddleware, controllers.GetBatches)
	batchGroup.Get("/:id", middleware.JWTMiddleware, validators.BatchID(), controllers.GetBatch)
	batchGroup.Put("/:id/status", middleware.JWTMiddleware, validators.UpdateBatchStatus(), controllers.UpdateBatchStatus)

	// Certificate generation for all eligible participants of the batch
	batchGroup.Post("/:id/certificates/generate", middleware.JWTMiddleware, validators.BatchID(), controllers.GenerateCertificates)
}
