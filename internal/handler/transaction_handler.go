package handler

import (
	"time"

	"go-backoffice-api/internal/dto"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransactionByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

func (h *TransactionHandler) GetTransactionsByType(c *fiber.Ctx) error {
	transactions, err := h.service.GetTransactionsByType(c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransactionsByDateRange(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, expected RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid end date, expected RFC3339"})
	}

	transactions, err := h.service.GetTransactionsByDateRange(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var input dto.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.CreateTransaction(&input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transaction created", "data": transaction})
}

func (h *TransactionHandler) UpdateTransactionStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var input dto.UpdateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.UpdateTransactionStatus(id, &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction updated", "data": transaction})
}

func (h *TransactionHandler) CancelTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.CancelTransaction(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction cancelled"})
}

func (h *TransactionHandler) UpdateTransactionFull(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var input dto.FullUpdateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.UpdateTransactionFull(id, &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction updated", "data": transaction})
}

func (h *TransactionHandler) AddDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var input dto.AddDetailInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.AddDetail(id, &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Detail added", "data": transaction})
}

func (h *TransactionHandler) RemoveDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	detailID, err := uuid.Parse(c.Params("detailId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid detail ID"})
	}

	if err := h.service.RemoveDetail(id, detailID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Detail removed"})
}
