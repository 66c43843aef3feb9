package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindAllWithCategories() ([]model.Product, error)
	FindAllIDs() ([]uuid.UUID, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDWithCategories(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	ExistsByCode(code string, excludeID uuid.UUID) (bool, error)
	ExistsByName(name string, excludeID uuid.UUID) (bool, error)
	Update(product *model.Product) error
	Delete(product *model.Product) error
	ReplaceCategories(product *model.Product, categories []model.Category) error

	// Transactional variants; tx is the unit-of-work handle
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindExistingIDs(tx *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, error)
	Save(tx *gorm.DB, product *model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllWithCategories() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Categories").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Product{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByIDWithCategories(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Categories").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	return &product, err
}

func (r *productRepo) ExistsByCode(code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("code = ? AND id <> ?", code, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) ExistsByName(name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(product *model.Product) error {
	if err := r.db.Model(product).Association("Categories").Clear(); err != nil {
		return err
	}
	return r.db.Delete(product).Error
}

func (r *productRepo) ReplaceCategories(product *model.Product, categories []model.Category) error {
	return r.db.Model(product).Association("Categories").Replace(categories)
}

// FindForUpdate locks the product row for the duration of the caller's
// database transaction
func (r *productRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := forUpdate(tx).First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindExistingIDs(tx *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, error) {
	var existing []uuid.UUID
	err := tx.Model(&model.Product{}).Where("id IN ?", ids).Pluck("id", &existing).Error
	return existing, err
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}
