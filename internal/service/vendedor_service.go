package service

import (
	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/validator"
)

type VendedorService interface {
	CreateVendedor(vendedor *model.Vendedor) error
	GetAllVendedores() ([]model.Vendedor, error)
}

type vendedorService struct {
	vendedores repository.VendedorRepository
}

func NewVendedorService(vendedores repository.VendedorRepository) VendedorService {
	return &vendedorService{vendedores: vendedores}
}

func (s *vendedorService) CreateVendedor(vendedor *model.Vendedor) error {
	if err := validator.ValidateStruct(vendedor); err != nil {
		return err
	}

	if exists, err := s.vendedores.ExistsByCode(vendedor.Code); err != nil {
		return err
	} else if exists {
		return apperr.Conflict("A vendedor with code '%s' already exists", vendedor.Code)
	}
	if exists, err := s.vendedores.ExistsByName(vendedor.Name); err != nil {
		return err
	} else if exists {
		return apperr.Conflict("A vendedor with name '%s' already exists", vendedor.Name)
	}

	return s.vendedores.Create(vendedor)
}

func (s *vendedorService) GetAllVendedores() ([]model.Vendedor, error) {
	return s.vendedores.FindAll()
}
