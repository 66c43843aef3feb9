package handler

import (
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VendedorHandler struct {
	service service.VendedorService
}

func NewVendedorHandler(s service.VendedorService) *VendedorHandler {
	return &VendedorHandler{service: s}
}

func (h *VendedorHandler) GetVendedores(c *fiber.Ctx) error {
	vendedores, err := h.service.GetAllVendedores()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendedores)
}

func (h *VendedorHandler) CreateVendedor(c *fiber.Ctx) error {
	var vendedor model.Vendedor
	if err := c.BodyParser(&vendedor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateVendedor(&vendedor); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Vendedor created", "data": vendedor})
}
