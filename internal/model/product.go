package model

import "github.com/shopspring/decimal"

const (
	ProductActive   = "A"
	ProductInactive = "I"
)

type Product struct {
	BaseModel
	Code        string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Status      string          `gorm:"type:varchar(1);default:'A'" json:"status"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Image       string          `gorm:"type:varchar(500)" json:"image,omitempty"`

	// Relations
	Categories []Category `gorm:"many2many:category_products" json:"categories,omitempty"`
}
