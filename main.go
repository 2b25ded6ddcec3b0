package main

import (
	"log"

	"lotuslight/config"
	"lotuslight/database"
	adminRoutes "lotuslight/routers/adminRoutes"
	authRoutes "lotuslight/routers/authRoutes"
	classRoutes "lotuslight/routers/classRoutes"
	paymentRoutes "lotuslight/routers/paymentRoutes"
	selectionRoutes "lotuslight/routers/selectionRoutes"
	userRoutes "lotuslight/routers/userRoutes"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to LotusLight Studio Server!")
	})

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	classRoutes.SetupClassRoutes(app)
	selectionRoutes.SetupSelectionRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Completes settlements that crashed after the payment anchor
	utils.InitializeRecoveryScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
