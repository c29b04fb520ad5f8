package results

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/grading"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
	svc "github.com/ProfHezzy/AdvancedSMS-sub002/app/results"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/validation"
)

func CompileResultAPI(c *fiber.Ctx, service *svc.Service) error {
	var in svc.CompileInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := service.Compile(c.Context(), in)
	if err != nil {
		var verr *grading.ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(fiber.StatusBadRequest, verr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compile result")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

func CompileBatchAPI(c *fiber.Ctx, service *svc.Service) error {
	var rows []svc.CompileInput
	if err := c.BodyParser(&rows); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(rows) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No rows to compile")
	}
	for i := range rows {
		if err := validation.Struct(&rows[i]); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	outcome := service.CompileBatch(c.Context(), rows)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    outcome,
	})
}

func GetReportCardAPI(c *fiber.Ctx, service *svc.Service) error {
	studentID := c.Params("student_id")
	termID := c.Query("term_id")
	if termID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "term_id is required")
	}

	card, err := service.ReportCard(c.Context(), studentID, termID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build report card")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    card,
	})
}

func GetGradesAPI(c *fiber.Ctx, db *sql.DB) error {
	grades, err := getGrades(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(fiber.Map{
		"grades": grades,
		"count":  len(grades),
	})
}

func GetGradeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	grade, err := getGradeByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Grade not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    grade,
	})
}

type gradeRequest struct {
	Name     string  `json:"name" validate:"required"`
	MinMarks float64 `json:"min_marks" validate:"gte=0,lte=100"`
	MaxMarks float64 `json:"max_marks" validate:"gte=0,lte=100,gtefield=MinMarks"`
	Points   float64 `json:"points" validate:"gte=0"`
	Remark   string  `json:"remark" validate:"required"`
	IsActive *bool   `json:"is_active"`
}

func CreateGradeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	grade := &models.Grade{
		Name:     req.Name,
		MinMarks: req.MinMarks,
		MaxMarks: req.MaxMarks,
		Points:   req.Points,
		Remark:   req.Remark,
		IsActive: true,
	}
	if req.IsActive != nil {
		grade.IsActive = *req.IsActive
	}
	if err := createGrade(db, grade); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create grade")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    grade,
	})
}

func UpdateGradeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	grade := &models.Grade{
		Name:     req.Name,
		MinMarks: req.MinMarks,
		MaxMarks: req.MaxMarks,
		Points:   req.Points,
		Remark:   req.Remark,
		IsActive: true,
	}
	grade.ID = c.Params("id")
	if req.IsActive != nil {
		grade.IsActive = *req.IsActive
	}
	if err := updateGrade(db, grade); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Grade not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update grade")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    grade,
	})
}

func DeleteGradeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := deleteGrade(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Grade not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete grade")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Grade deleted",
	})
}
