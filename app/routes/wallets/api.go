package wallets

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/payments"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/validation"
)

func CreateWalletAPI(c *fiber.Ctx, service *payments.Service) error {
	type CreateWalletRequest struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
	}

	var req CreateWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	wallet, err := service.OpenWallet(c.Context(), req.StudentID)
	if err != nil {
		if errors.Is(err, payments.ErrWalletExists) {
			return fiber.NewError(fiber.StatusConflict, "Student already has a wallet")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create wallet")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    wallet,
	})
}

func TopUpWalletAPI(c *fiber.Ctx, service *payments.Service) error {
	type TopUpRequest struct {
		Amount      models.Money `json:"amount"`
		Description string       `json:"description"`
	}

	var req TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	entry, err := service.TopUp(c.Context(), c.Params("id"), req.Amount, req.Description)
	if err != nil {
		var verr *payments.ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(fiber.StatusBadRequest, verr.Error())
		case errors.Is(err, payments.ErrWalletNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Wallet not found")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Top-up failed")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    entry,
	})
}

func GetWalletAPI(c *fiber.Ctx, service *payments.Service) error {
	wallet, err := service.Balance(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, payments.ErrWalletNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Wallet not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch wallet")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    wallet,
	})
}

func GetStatementAPI(c *fiber.Ctx, service *payments.Service) error {
	entries, err := service.Statement(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, payments.ErrWalletNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Wallet not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch statement")
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}
