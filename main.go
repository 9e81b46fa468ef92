package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"ojtms/config"
	controllers "ojtms/controllers/ojt"
	"ojtms/database"
	"ojtms/routers/ojtRoutes"
	"ojtms/routers/publicRoutes"
	"ojtms/services"
	"ojtms/services/render"
	"ojtms/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	controllers.InitServices(services.NewCertificateService(
		database.Database.Db,
		render.NewPDFRenderer(),
		utils.CertificateNotifier{},
		config.AppConfig.PublicBaseURL,
	))

	utils.InitializeSchedulers()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	publicRoutes.SetupPublicRoutes(app)
	ojtRoutes.SetupBatchRoutes(app)
	ojtRoutes.SetupParticipantRoutes(app)
	ojtRoutes.SetupEventRoutes(app)
	ojtRoutes.SetupAssignmentRoutes(app)
	ojtRoutes.SetupCertificateRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
