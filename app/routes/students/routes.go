package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/auth"
)

func SetupStudentRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/students", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, db)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentByIDAPI(c, db)
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, db)
	})
}
