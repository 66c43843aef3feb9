package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType = string

const (
	TxPurchase TransactionType = "C" // Compra - increases stock
	TxSale     TransactionType = "V" // Venta - decreases stock
)

type TransactionStatus = string

const (
	TxActive    TransactionStatus = "A"
	TxInactive  TransactionStatus = "I"
	TxCancelled TransactionStatus = "C"
)

func IsValidTransactionType(t string) bool {
	return t == TxPurchase || t == TxSale
}

func IsValidTransactionStatus(s string) bool {
	return s == TxActive || s == TxInactive || s == TxCancelled
}

// TransactionTypeDescription returns a human readable label for a type code.
func TransactionTypeDescription(t string) string {
	switch t {
	case TxPurchase:
		return "Purchase"
	case TxSale:
		return "Sale"
	default:
		return "Unknown"
	}
}

// TransactionStatusDescription returns a human readable label for a status code.
func TransactionStatusDescription(s string) string {
	switch s {
	case TxActive:
		return "Active"
	case TxInactive:
		return "Inactive"
	case TxCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

type Transaction struct {
	BaseModel
	EmissionDate time.Time       `gorm:"not null" json:"emission_date"`
	Code         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Type         string          `gorm:"type:varchar(1);not null" json:"type" validate:"required,oneof=C V"`
	Status       string          `gorm:"type:varchar(1);default:'A'" json:"status"`
	PriceUnit    decimal.Decimal `gorm:"type:decimal(18,2)" json:"price_unit"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	Message      string          `gorm:"type:text" json:"message"`

	// Owned lines; a transaction always retains at least one
	Details []DetailTransaction `gorm:"foreignKey:TransactionID" json:"details"`
}

type DetailTransaction struct {
	BaseModel
	TransactionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Transaction   *Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	ProductID     *uuid.UUID   `gorm:"type:uuid;index" json:"product_id"` // nullable - product may be gone later
	Product       *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Code          string       `gorm:"type:varchar(250)" json:"code"`

	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2)" json:"subtotal"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2)" json:"total"`
	Description string          `gorm:"type:varchar(250)" json:"description"`
}

// Recalculate keeps subtotal and total in sync with unit price and quantity.
// Total currently equals subtotal; taxes or discounts would slot in here.
func (d *DetailTransaction) Recalculate() {
	d.Subtotal = d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
	d.Total = d.Subtotal
}
