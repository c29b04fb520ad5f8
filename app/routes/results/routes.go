package results

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	svc "github.com/ProfHezzy/AdvancedSMS-sub002/app/results"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/routes/auth"
)

func SetupResultRoutes(app *fiber.App, db *sql.DB) {
	service := svc.NewService(svc.NewPostgresStore(db))

	api := app.Group("/api/results", auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error {
		return CompileResultAPI(c, service)
	})

	api.Post("/batch", func(c *fiber.Ctx) error {
		return CompileBatchAPI(c, service)
	})

	api.Get("/report-card/:student_id", func(c *fiber.Ctx) error {
		return GetReportCardAPI(c, service)
	})

	grades := app.Group("/api/grades", auth.AuthMiddleware)

	grades.Get("/", func(c *fiber.Ctx) error {
		return GetGradesAPI(c, db)
	})

	grades.Get("/:id", func(c *fiber.Ctx) error {
		return GetGradeByIDAPI(c, db)
	})

	grades.Post("/", func(c *fiber.Ctx) error {
		return CreateGradeAPI(c, db)
	})

	grades.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateGradeAPI(c, db)
	})

	grades.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteGradeAPI(c, db)
	})
}
