package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateDetailInput struct {
	ProductID       uuid.UUID        `json:"product_id" validate:"uuid_required"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	Description     string           `json:"description"`
	CustomUnitPrice *decimal.Decimal `json:"custom_unit_price"`
}

type CreateTransactionInput struct {
	Type    string              `json:"type" validate:"required,oneof=C V"`
	Message string              `json:"message"`
	Details []CreateDetailInput `json:"details" validate:"required,min=1,dive"`
}

// UpdateTransactionInput updates only the fields that are supplied.
type UpdateTransactionInput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type UpdateDetailInput struct {
	DetailID    uuid.UUID       `json:"detail_id" validate:"uuid_required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	Description string          `json:"description"`
	// Optional: move the line to a different product
	NewProductID *uuid.UUID `json:"new_product_id"`
}

type FullUpdateTransactionInput struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Details []UpdateDetailInput `json:"details" validate:"dive"`
}

type AddDetailInput struct {
	ProductID       uuid.UUID        `json:"product_id" validate:"uuid_required"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	Description     string           `json:"description"`
	CustomUnitPrice *decimal.Decimal `json:"custom_unit_price"`
}
