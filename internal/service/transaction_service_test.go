package service

import (
	"errors"
	"testing"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/dto"
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateSaleTransaction(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "keyboard", dec("25.50"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "VT-20250603-0001", transaction.Code)
	assert.Equal(t, model.TxActive, transaction.Status)
	assert.True(t, transaction.EmissionDate.Equal(testTime))
	require.Len(t, transaction.Details, 1)

	line := transaction.Details[0]
	assert.Equal(t, "VT-20250603-0001-001", line.Code)
	assert.True(t, line.UnitPrice.Equal(dec("25.50")), "unit price copied from product")
	assert.True(t, line.Subtotal.Equal(dec("127.50")))
	assert.True(t, line.Total.Equal(line.Subtotal))
	assertTotalsInvariant(t, transaction)

	assert.Equal(t, 5, env.productStock(t, product))
}

func TestCreateTransactionCustomUnitPrice(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "mouse", dec("10.00"), 10)

	override := dec("8.00")
	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 2, CustomUnitPrice: &override},
		},
	})
	require.NoError(t, err)

	assert.True(t, transaction.Details[0].UnitPrice.Equal(override))
	assert.True(t, transaction.TotalAmount.Equal(dec("16.00")))
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "monitor", dec("100.00"), 5)

	_, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 10},
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock), "got %v", err)

	// Nothing persisted, stock untouched
	assert.Equal(t, 5, env.productStock(t, product))
	var count int64
	env.db.Model(&model.Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateMultiLineRollsBackEarlierStockMutations(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct(t, "cable", dec("2.00"), 10)
	second := env.createProduct(t, "adapter", dec("5.00"), 1)

	_, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: first.ID, Quantity: 4},  // would succeed
			{ProductID: second.ID, Quantity: 3}, // fails
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	assert.Equal(t, 10, env.productStock(t, first), "first line's mutation must roll back")
	assert.Equal(t, 1, env.productStock(t, second))
}

func TestCreateTransactionUnknownProducts(t *testing.T) {
	env := newTestEnv(t)
	missingA := uuid.New()
	missingB := uuid.New()

	_, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: missingA, Quantity: 1},
			{ProductID: missingB, Quantity: 2},
		},
	})

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	msgs := ve.Fields["product_ids"]
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], missingA.String())
	assert.Contains(t, msgs[0], missingB.String())

	var count int64
	env.db.Model(&model.Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateTransactionInvalidType(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "desk", dec("300.00"), 2)

	_, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: "X",
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	// The struct tag rejects it before the type check does
	assert.Error(t, err)
	assert.True(t, apperr.IsClientError(err), "got %v", err)
}

func TestTransactionCodesIncrementPerType(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "lamp", dec("12.00"), 100)

	lines := []dto.CreateDetailInput{{ProductID: product.ID, Quantity: 1}}

	first, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{Type: model.TxSale, Details: lines})
	require.NoError(t, err)
	second, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{Type: model.TxSale, Details: lines})
	require.NoError(t, err)
	purchase, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{Type: model.TxPurchase, Details: lines})
	require.NoError(t, err)

	assert.Equal(t, "VT-20250603-0001", first.Code)
	assert.Equal(t, "VT-20250603-0002", second.Code)
	assert.Equal(t, "CT-20250603-0001", purchase.Code)
}

func TestPurchaseThenCancelRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "chair", dec("45.00"), 0)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxPurchase,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, env.productStock(t, product))

	require.NoError(t, env.txService.CancelTransaction(transaction.ID))
	assert.Equal(t, 0, env.productStock(t, product), "cancel must restore the pre-create stock exactly")

	cancelled, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TxCancelled, cancelled.Status)
	assert.Equal(t, "Transaction cancelled on 2025-06-03 10:00:00", cancelled.Message)
}

func TestCancelSaleRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "headset", dec("60.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, env.productStock(t, product))

	require.NoError(t, env.txService.CancelTransaction(transaction.ID))
	assert.Equal(t, 10, env.productStock(t, product))
}

func TestCancelPurchaseWithConsumedStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "ssd", dec("80.00"), 0)

	purchase, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxPurchase,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// Consume the purchased stock through an unrelated sale
	_, err = env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, env.productStock(t, product))

	err = env.txService.CancelTransaction(purchase.ID)
	assert.True(t, errors.Is(err, apperr.ErrNegativeStockOnReversal), "got %v", err)

	// Atomic abort: status and stock unchanged
	assert.Equal(t, 0, env.productStock(t, product))
	fresh, err := env.txService.GetTransactionByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TxActive, fresh.Status)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "mat", dec("9.00"), 5)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.txService.CancelTransaction(transaction.ID))

	err = env.txService.CancelTransaction(transaction.ID)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyCancelled))
}

func TestCancelledTransactionIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "hub", dec("20.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.txService.CancelTransaction(transaction.ID))

	_, err = env.txService.UpdateTransactionStatus(transaction.ID, &dto.UpdateTransactionInput{Status: model.TxInactive})
	assert.True(t, errors.Is(err, apperr.ErrTransactionClosed))

	_, err = env.txService.AddDetail(transaction.ID, &dto.AddDetailInput{ProductID: product.ID, Quantity: 1})
	assert.True(t, errors.Is(err, apperr.ErrTransactionClosed))

	err = env.txService.RemoveDetail(transaction.ID, transaction.Details[0].ID)
	assert.True(t, errors.Is(err, apperr.ErrTransactionClosed))

	_, err = env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{DetailID: transaction.Details[0].ID, Quantity: 5, UnitPrice: dec("1.00")},
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrTransactionClosed))
}

func TestUpdateTransactionStatus(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "stand", dec("15.00"), 5)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	updated, err := env.txService.UpdateTransactionStatus(transaction.ID, &dto.UpdateTransactionInput{
		Status:  model.TxInactive,
		Message: "on hold",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TxInactive, updated.Status)
	assert.Equal(t, "on hold", updated.Message)

	_, err = env.txService.UpdateTransactionStatus(transaction.ID, &dto.UpdateTransactionInput{Status: "Z"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidStatus))

	// Cancellation is funnelled through the cancel operation
	_, err = env.txService.UpdateTransactionStatus(transaction.ID, &dto.UpdateTransactionInput{Status: model.TxCancelled})
	assert.True(t, errors.Is(err, apperr.ErrInvalidStatus))
	fresh, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TxInactive, fresh.Status)
}

func TestAddDetail(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct(t, "pen", dec("1.50"), 10)
	second := env.createProduct(t, "notebook", dec("4.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: first.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	updated, err := env.txService.AddDetail(transaction.ID, &dto.AddDetailInput{
		ProductID: second.ID,
		Quantity:  3,
	})
	require.NoError(t, err)

	require.Len(t, updated.Details, 2)
	assert.Equal(t, transaction.Code+"-002", updated.Details[1].Code)
	assert.True(t, updated.TotalAmount.Equal(dec("15.00"))) // 2*1.50 + 3*4.00
	assertTotalsInvariant(t, updated)
	assert.Equal(t, 7, env.productStock(t, second))
}

func TestAddDetailInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct(t, "ruler", dec("2.00"), 10)
	second := env.createProduct(t, "stapler", dec("6.00"), 1)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: first.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = env.txService.AddDetail(transaction.ID, &dto.AddDetailInput{ProductID: second.ID, Quantity: 5})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	fresh, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Details, 1)
	assert.Equal(t, 1, env.productStock(t, second))
}

func TestRemoveDetail(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct(t, "eraser", dec("0.50"), 10)
	second := env.createProduct(t, "sharpener", dec("1.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: first.ID, Quantity: 4},
			{ProductID: second.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, env.productStock(t, first))

	require.NoError(t, env.txService.RemoveDetail(transaction.ID, transaction.Details[0].ID))

	assert.Equal(t, 10, env.productStock(t, first), "removed line's stock effect reversed")

	fresh, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Details, 1)
	assert.True(t, fresh.TotalAmount.Equal(dec("2.00")))
	assertTotalsInvariant(t, fresh)
}

func TestRemoveLastDetailRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "tape", dec("3.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	err = env.txService.RemoveDetail(transaction.ID, transaction.Details[0].ID)
	assert.True(t, errors.Is(err, apperr.ErrCannotRemoveLastLine))

	// No mutation
	assert.Equal(t, 8, env.productStock(t, product))
	fresh, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Details, 1)
}

func TestRemoveDetailNotFound(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "clip", dec("0.20"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	err = env.txService.RemoveDetail(transaction.ID, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrLineNotFound))
}

func TestFullUpdateSwitchesProduct(t *testing.T) {
	env := newTestEnv(t)
	productA := env.createProduct(t, "plate", dec("5.00"), 10)
	productB := env.createProduct(t, "bowl", dec("7.00"), 10)
	productC := env.createProduct(t, "cup", dec("2.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: productA.ID, Quantity: 2},
			{ProductID: productC.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 8, env.productStock(t, productA))

	newB := productB.ID
	updated, err := env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{
				DetailID:     transaction.Details[0].ID,
				Quantity:     5,
				UnitPrice:    dec("7.00"),
				NewProductID: &newB,
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.productStock(t, productA), "old effect reversed")
	assert.Equal(t, 5, env.productStock(t, productB), "new effect applied")
	assert.Equal(t, 9, env.productStock(t, productC), "untouched line unchanged")

	// Aggregate recomputed over ALL lines: 5*7.00 + 1*2.00
	assert.True(t, updated.TotalAmount.Equal(dec("37.00")))
	assertTotalsInvariant(t, updated)

	edited := findDetail(updated, transaction.Details[0].ID)
	require.NotNil(t, edited)
	assert.Equal(t, productB.ID, *edited.ProductID)
	assert.Equal(t, 5, edited.Quantity)
	assert.True(t, edited.Subtotal.Equal(dec("35.00")))

	// The reloaded line carries the new product, and switching never
	// writes a second copy of either product row
	require.NotNil(t, edited.Product)
	assert.Equal(t, "bowl", edited.Product.Name)
	var productCount int64
	env.db.Model(&model.Product{}).Count(&productCount)
	assert.EqualValues(t, 3, productCount)
}

func TestFullUpdateQuantityOnly(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "jar", dec("4.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 7, env.productStock(t, product))

	updated, err := env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{DetailID: transaction.Details[0].ID, Quantity: 1, UnitPrice: dec("4.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 9, env.productStock(t, product))
	assert.True(t, updated.TotalAmount.Equal(dec("4.00")))
}

func TestFullUpdateInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "vase", dec("11.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 8, env.productStock(t, product))

	_, err = env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{DetailID: transaction.Details[0].ID, Quantity: 100, UnitPrice: dec("11.00")},
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))

	assert.Equal(t, 8, env.productStock(t, product))
	fresh, err := env.txService.GetTransactionByID(transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Details[0].Quantity)
	assert.True(t, fresh.TotalAmount.Equal(dec("22.00")))
}

func TestFullUpdateLineNotFound(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "tray", dec("6.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{DetailID: uuid.New(), Quantity: 1, UnitPrice: dec("6.00")},
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrLineNotFound))
}

func TestFullUpdateUnknownNewProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "box", dec("3.00"), 10)

	transaction, err := env.txService.CreateTransaction(&dto.CreateTransactionInput{
		Type: model.TxSale,
		Details: []dto.CreateDetailInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = env.txService.UpdateTransactionFull(transaction.ID, &dto.FullUpdateTransactionInput{
		Details: []dto.UpdateDetailInput{
			{DetailID: transaction.Details[0].ID, Quantity: 1, UnitPrice: dec("3.00"), NewProductID: &missing},
		},
	})
	assert.True(t, apperr.IsNotFound(err), "got %v", err)
	assert.Equal(t, 9, env.productStock(t, product), "rolled back")
}

func TestGetTransactionsByTypeValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.txService.GetTransactionsByType("Q")
	assert.True(t, errors.Is(err, apperr.ErrInvalidType))
}

func TestGetTransactionsByDateRangeValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.txService.GetTransactionsByDateRange(testTime.AddDate(0, 0, 1), testTime)
	assert.True(t, errors.Is(err, apperr.ErrInvalidDateRange))
}

func TestGetTransactionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.txService.GetTransactionByID(uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
