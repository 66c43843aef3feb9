package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAllActive() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	FindByIDs(ids []uuid.UUID) ([]model.Category, error)
	ExistsByCode(code string) (bool, error)
	Update(category *model.Category) error
	Delete(category *model.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAllActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("status = ?", model.CategoryActive).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *categoryRepo) FindByIDs(ids []uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(category *model.Category) error {
	return r.db.Delete(category).Error
}
