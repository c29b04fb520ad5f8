package wallets

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/payments"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/auth"
)

func SetupWalletRoutes(app *fiber.App, db *sql.DB) {
	service := payments.NewService(payments.NewPostgresStore(db))

	api := app.Group("/api/wallets", auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateWalletAPI(c, service)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetWalletAPI(c, service)
	})

	api.Post("/:id/top-up", func(c *fiber.Ctx) error {
		return TopUpWalletAPI(c, service)
	})

	api.Get("/:id/statement", func(c *fiber.Ctx) error {
		return GetStatementAPI(c, service)
	})
}
