package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/config"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/database"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/auth"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/fees"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/results"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/students"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/wallets"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/services"
)

// customErrorHandler renders HTTP errors as a JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.Load()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup students routes
	students.SetupStudentRoutes(app, config.GetDB())

	// Setup results routes
	results.SetupResultRoutes(app, config.GetDB())

	// Setup fees routes
	fees.SetupFeeRoutes(app, config.GetDB())

	// Setup wallets routes
	wallets.SetupWalletRoutes(app, config.GetDB())

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	// Start server
	addr := config.AppConfig.ListenAddr
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
