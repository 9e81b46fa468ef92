package publicRoutes

import (
	"github.com/gofiber/fiber/v2"

	"ojtms/controllers/public"
)

// SetupPublicRoutes sets up the unauthenticated certificate API
func SetupPublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1/certificates")

	api.Get("/verify/:serial", public.VerifyCertificate)
	api.Get("/graduates", public.GetGraduates)

	// QR scans land here and are redirected to the verify endpoint
	app.Get("/ojt/cert/qr/:token", public.QRRedirect)
}
