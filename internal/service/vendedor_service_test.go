package service

import (
	"errors"
	"testing"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVendedorService(t *testing.T) VendedorService {
	t.Helper()
	return NewVendedorService(repository.NewVendedorRepo(newTestDB(t)))
}

func TestCreateVendedor(t *testing.T) {
	svc := newVendedorService(t)

	vendedor := &model.Vendedor{
		Code:      "VEN-001",
		Name:      "north district",
		Latitude:  -0.1807,
		Longitude: -78.4678,
		RadiusM:   500,
	}
	require.NoError(t, svc.CreateVendedor(vendedor))

	all, err := svc.GetAllVendedores()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "VEN-001", all[0].Code)
	assert.InDelta(t, 500, all[0].RadiusM, 0.001)
}

func TestCreateVendedorConflicts(t *testing.T) {
	svc := newVendedorService(t)

	require.NoError(t, svc.CreateVendedor(&model.Vendedor{Code: "VEN-001", Name: "north"}))

	var ce *apperr.ConflictError
	err := svc.CreateVendedor(&model.Vendedor{Code: "VEN-001", Name: "south"})
	assert.True(t, errors.As(err, &ce), "duplicate code: got %v", err)

	err = svc.CreateVendedor(&model.Vendedor{Code: "VEN-002", Name: "north"})
	assert.True(t, errors.As(err, &ce), "duplicate name: got %v", err)
}

func TestCreateVendedorValidation(t *testing.T) {
	svc := newVendedorService(t)

	err := svc.CreateVendedor(&model.Vendedor{Latitude: 1, Longitude: 1})
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}
