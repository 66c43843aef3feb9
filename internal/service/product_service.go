package service

import (
	"errors"
	"strings"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/dto"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	GetAllProducts() ([]model.Product, error)
	GetAllWithCategories() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetAllCategories() ([]model.Category, error)
	CreateCategory(input *dto.CategoryInput) (*model.Category, error)
	UpdateCategory(id uuid.UUID, input *dto.CategoryInput) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	CreateProduct(input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	codes      *CodeGenerator
	hub        *ws.Hub
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	codes *CodeGenerator,
	hub *ws.Hub,
) ProductService {
	return &productService{products: products, categories: categories, codes: codes, hub: hub}
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.products.FindAll()
}

func (s *productService) GetAllWithCategories() ([]model.Product, error) {
	return s.products.FindAllWithCategories()
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByIDWithCategories(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product", id.String())
	}
	return product, err
}

func (s *productService) GetAllCategories() ([]model.Category, error) {
	return s.categories.FindAllActive()
}

func (s *productService) CreateCategory(input *dto.CategoryInput) (*model.Category, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	if exists, err := s.categories.ExistsByCode(input.Code); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Conflict("A category with code '%s' already exists", input.Code)
	}

	status := input.Status
	if status == "" {
		status = model.CategoryActive
	}

	category := model.Category{Code: input.Code, Name: input.Name, Status: status}
	if err := s.categories.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *productService) UpdateCategory(id uuid.UUID, input *dto.CategoryInput) (*model.Category, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Category", id.String())
	}
	if err != nil {
		return nil, err
	}

	if input.Code != category.Code {
		if exists, err := s.categories.ExistsByCode(input.Code); err != nil {
			return nil, err
		} else if exists {
			return nil, apperr.Conflict("A category with code '%s' already exists", input.Code)
		}
		category.Code = input.Code
	}
	category.Name = input.Name
	if input.Status != "" {
		category.Status = input.Status
	}

	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categories.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Category", id.String())
	}
	if err != nil {
		return err
	}
	return s.categories.Delete(category)
}

func (s *productService) CreateProduct(input *dto.CreateProductInput) (*model.Product, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	if input.Code != "" {
		if exists, err := s.products.ExistsByCode(input.Code, uuid.Nil); err != nil {
			return nil, err
		} else if exists {
			return nil, apperr.Conflict("A product with code '%s' already exists", input.Code)
		}
	}
	if exists, err := s.products.ExistsByName(input.Name, uuid.Nil); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Conflict("A product with name '%s' already exists", input.Name)
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.ProductActive
	}

	product := model.Product{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      status,
		Image:       input.Image,
	}

	if product.Code == "" {
		code, err := s.generateUniqueProductCode()
		if err != nil {
			return nil, err
		}
		product.Code = code
	}

	if err := s.products.Create(&product); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		if err := s.products.ReplaceCategories(&product, categories); err != nil {
			return nil, err
		}
	}

	s.hub.PublishStockUpdate("product_created", product)
	return &product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product", id.String())
	}
	if err != nil {
		return nil, err
	}

	if input.Code != "" {
		if exists, err := s.products.ExistsByCode(input.Code, id); err != nil {
			return nil, err
		} else if exists {
			return nil, apperr.Conflict("A product with code '%s' already exists", input.Code)
		}
		product.Code = input.Code
	}
	if exists, err := s.products.ExistsByName(input.Name, id); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Conflict("A product with name '%s' already exists", input.Name)
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	if input.Status != "" {
		product.Status = input.Status
	}
	if input.Image != "" {
		product.Image = input.Image
	}

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		if err := s.products.ReplaceCategories(product, categories); err != nil {
			return nil, err
		}
	}

	s.hub.PublishStockUpdate("product_updated", product)
	return product, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Product", id.String())
	}
	if err != nil {
		return err
	}
	return s.products.Delete(product)
}

// resolveCategories loads the referenced categories, reporting every missing
// id in one validation error.
func (s *productService) resolveCategories(ids []uuid.UUID) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	categories, err := s.categories.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("category_ids",
			"The following category IDs do not exist: "+strings.Join(missing, ", "))
	}
	return categories, nil
}

func (s *productService) generateUniqueProductCode() (string, error) {
	for {
		code := s.codes.ProductCode()
		exists, err := s.products.ExistsByCode(code, uuid.Nil)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
