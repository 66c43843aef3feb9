package handler

import (
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetProductReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	report, err := h.service.GetProductTransactionReport(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetProductReportByCode(c *fiber.Ctx) error {
	report, err := h.service.GetProductTransactionReportByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetMultipleProductsReport(c *fiber.Ctx) error {
	var productIDs []uuid.UUID
	if err := c.BodyParser(&productIDs); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON, expected an array of product IDs"})
	}

	report, err := h.service.GetMultipleProductsReport(productIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetAllProductsReport(c *fiber.Ctx) error {
	report, err := h.service.GetAllProductsReport()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
