package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Code        string          `json:"code"` // generated when empty
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=A I"`
	Image       string          `json:"image"`
	CategoryIDs []uuid.UUID     `json:"category_ids"`
}

type CategoryInput struct {
	Code   string `json:"code" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=A I"`
}

type UpdateProductInput struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=A I"`
	Image       string          `json:"image"`
	CategoryIDs []uuid.UUID     `json:"category_ids"`
}
