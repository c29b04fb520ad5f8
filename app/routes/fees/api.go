package fees

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/payments"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/validation"
)

func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	filter := FeeFilter{
		StudentID: c.Query("student_id"),
		TermID:    c.Query("term_id"),
		Status:    c.Query("status"),
	}

	fees, err := getFees(db, filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fees"})
	}

	return c.JSON(fiber.Map{
		"fees":  fees,
		"count": len(fees),
	})
}

func GetFeeByIDAPI(c *fiber.Ctx, service *payments.Service) error {
	fee, err := service.Fee(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, payments.ErrFeeNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fee,
	})
}

func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateFeeRequest struct {
		StudentID string            `json:"student_id" validate:"required,uuid"`
		FeeTypeID *string           `json:"fee_type_id" validate:"omitempty,uuid"`
		TermID    *string           `json:"term_id" validate:"omitempty,uuid"`
		Title     string            `json:"title" validate:"required"`
		Amount    models.Money      `json:"amount"`
		DueDate   models.CustomDate `json:"due_date"`
	}

	var req CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if req.DueDate.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "due_date is required")
	}

	fee := &models.Fee{
		StudentID: req.StudentID,
		FeeTypeID: req.FeeTypeID,
		TermID:    req.TermID,
		Title:     req.Title,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
	}
	if err := createFee(db, fee); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fee,
	})
}

func DeleteFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := deleteFee(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found or already has payments")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee deleted",
	})
}

func SettleFeeAPI(c *fiber.Ctx, service *payments.Service) error {
	type SettleRequest struct {
		WalletID  string       `json:"wallet_id" validate:"required,uuid"`
		StudentID string       `json:"student_id" validate:"required,uuid"`
		Amount    models.Money `json:"amount"`
	}

	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	receipt, err := service.SettleFee(c.Context(), req.WalletID, req.StudentID, c.Params("id"), req.Amount)
	if err != nil {
		var verr *payments.ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(fiber.StatusBadRequest, verr.Error())
		case errors.Is(err, payments.ErrFeeNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		case errors.Is(err, payments.ErrWalletNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Wallet not found")
		case errors.Is(err, payments.ErrInsufficientFunds):
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Insufficient wallet balance")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Settlement failed")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    receipt,
	})
}

func GetFeeStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := getFeeStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee stats"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	types, err := getFeeTypes(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee types"})
	}

	return c.JSON(fiber.Map{
		"fee_types": types,
		"count":     len(types),
	})
}

func CreateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateFeeTypeRequest struct {
		Name string `json:"name" validate:"required"`
		Code string `json:"code" validate:"required"`
	}

	var req CreateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	feeType := &models.FeeType{Name: req.Name, Code: req.Code, IsActive: true}
	if err := createFeeType(db, feeType); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee type")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    feeType,
	})
}
