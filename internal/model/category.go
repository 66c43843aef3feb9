package model

const (
	CategoryActive   = "A"
	CategoryInactive = "I"
)

type Category struct {
	BaseModel
	Code   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name   string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Status string `gorm:"type:varchar(1);default:'A'" json:"status"`

	Products []Product `gorm:"many2many:category_products" json:"products,omitempty"`
}
