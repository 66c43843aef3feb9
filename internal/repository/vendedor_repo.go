package repository

import (
	"go-backoffice-api/internal/model"

	"gorm.io/gorm"
)

type VendedorRepository interface {
	Create(vendedor *model.Vendedor) error
	FindAll() ([]model.Vendedor, error)
	ExistsByCode(code string) (bool, error)
	ExistsByName(name string) (bool, error)
}

type vendedorRepo struct {
	db *gorm.DB
}

// NewVendedorRepo takes the secondary database handle when one is
// configured, otherwise the primary one.
func NewVendedorRepo(db *gorm.DB) VendedorRepository {
	return &vendedorRepo{db}
}

func (r *vendedorRepo) Create(vendedor *model.Vendedor) error {
	return r.db.Create(vendedor).Error
}

func (r *vendedorRepo) FindAll() ([]model.Vendedor, error) {
	var vendedores []model.Vendedor
	err := r.db.Find(&vendedores).Error
	return vendedores, err
}

func (r *vendedorRepo) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Vendedor{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *vendedorRepo) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Vendedor{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
