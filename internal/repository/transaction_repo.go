package repository

import (
	"time"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByType(txType string) ([]model.Transaction, error)
	FindByDateRange(start, end time.Time) ([]model.Transaction, error)

	// Detail lines for one product, joined with their owning transaction,
	// most recent emission first. Feeds the ledger reconstruction.
	FindDetailsByProduct(productID uuid.UUID) ([]model.DetailTransaction, error)

	// Transactional variants; tx is the unit-of-work handle
	Create(tx *gorm.DB, transaction *model.Transaction) error
	Save(tx *gorm.DB, transaction *model.Transaction) error
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error)
	CreateDetails(tx *gorm.DB, details []model.DetailTransaction) error
	SaveDetail(tx *gorm.DB, detail *model.DetailTransaction) error
	RemoveDetail(tx *gorm.DB, detail *model.DetailTransaction) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Details.Product").
		Order("emission_date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Details.Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) FindByType(txType string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Details.Product").
		Where("type = ?", txType).
		Order("emission_date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByDateRange(start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Details.Product").
		Where("emission_date BETWEEN ? AND ?", start, end).
		Order("emission_date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindDetailsByProduct(productID uuid.UUID) ([]model.DetailTransaction, error) {
	var details []model.DetailTransaction
	err := r.db.
		Joins("JOIN transactions ON transactions.id = detail_transactions.transaction_id").
		Where("detail_transactions.product_id = ?", productID).
		Order("transactions.emission_date DESC").
		Preload("Transaction").
		Find(&details).Error
	return details, err
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) Save(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Omit("Details").Save(transaction).Error
}

// FindByIDForUpdate locks the transaction row and loads its lines and
// their products
func (r *transactionRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := forUpdate(tx).
		Preload("Details.Product").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) CreateDetails(tx *gorm.DB, details []model.DetailTransaction) error {
	if len(details) == 0 {
		return nil
	}
	return tx.Create(&details).Error
}

// SaveDetail persists the line only; preloaded associations are never
// written back.
func (r *transactionRepo) SaveDetail(tx *gorm.DB, detail *model.DetailTransaction) error {
	return tx.Omit(clause.Associations).Save(detail).Error
}

func (r *transactionRepo) RemoveDetail(tx *gorm.DB, detail *model.DetailTransaction) error {
	return tx.Delete(detail).Error
}
