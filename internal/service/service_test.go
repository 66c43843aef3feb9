package service

import (
	"fmt"
	"testing"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testTime = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// newTestDB opens a private in-memory SQLite database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Category{},
		&model.Transaction{},
		&model.DetailTransaction{},
		&model.CodeSequence{},
		&model.Vendedor{},
	))
	return db
}

type testEnv struct {
	db           *gorm.DB
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	transactions repository.TransactionRepository
	txService    *transactionService
	reports      *reportService
	catalog      ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	products := repository.NewProductRepo(db)
	categories := repository.NewCategoryRepo(db)
	transactions := repository.NewTransactionRepo(db)
	codes := NewCodeGenerator(repository.NewSequenceRepo(db), fixedClock(testTime))

	txService := NewTransactionService(db, products, transactions, codes, nil).(*transactionService)
	txService.now = fixedClock(testTime)

	reports := NewReportService(products, transactions).(*reportService)
	reports.now = fixedClock(testTime)

	catalog := NewProductService(products, categories, codes, nil)

	return &testEnv{
		db:           db,
		products:     products,
		categories:   categories,
		transactions: transactions,
		txService:    txService,
		reports:      reports,
		catalog:      catalog,
	}
}

func (e *testEnv) createProduct(t *testing.T, name string, price decimal.Decimal, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Code:   "PRO-" + name,
		Name:   name,
		Price:  price,
		Status: model.ProductActive,
		Stock:  stock,
	}
	require.NoError(t, e.products.Create(product))
	return product
}

func (e *testEnv) productStock(t *testing.T, product *model.Product) int {
	t.Helper()

	fresh, err := e.products.FindByID(product.ID)
	require.NoError(t, err)
	return fresh.Stock
}

// Aggregate totals must always equal the sum of line totals.
func assertTotalsInvariant(t *testing.T, transaction *model.Transaction) {
	t.Helper()

	sum := decimal.Zero
	for _, d := range transaction.Details {
		sum = sum.Add(d.Total)
	}
	assert.True(t, transaction.TotalAmount.Equal(sum),
		"total amount %s != sum of lines %s", transaction.TotalAmount, sum)
	assert.True(t, transaction.PriceUnit.Equal(sum),
		"price unit %s != sum of lines %s", transaction.PriceUnit, sum)
}
