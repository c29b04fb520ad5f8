package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/database"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/validation"
)

func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	students, err := database.GetStudents(db, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateStudentRequest struct {
		StudentNo string `json:"student_no" validate:"required"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := &models.Student{
		StudentNo: req.StudentNo,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    models.Gender(req.Gender),
	}
	if err := database.CreateStudent(db, student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}
