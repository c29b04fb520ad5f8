package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/payments"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/auth"
)

func SetupFeeRoutes(app *fiber.App, db *sql.DB) {
	service := payments.NewService(payments.NewPostgresStore(db))

	api := app.Group("/api/fees", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, db)
	})

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetFeeStatsAPI(c, db)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeByIDAPI(c, service)
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeAPI(c, db)
	})

	api.Post("/:id/settle", func(c *fiber.Ctx) error {
		return SettleFeeAPI(c, service)
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteFeeAPI(c, db)
	})

	types := app.Group("/api/fee-types", auth.AuthMiddleware)

	types.Get("/", func(c *fiber.Ctx) error {
		return GetFeeTypesAPI(c, db)
	})

	types.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeTypeAPI(c, db)
	})
}
