package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/dto"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionService interface {
	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
	GetTransactionsByType(txType string) ([]model.Transaction, error)
	GetTransactionsByDateRange(start, end time.Time) ([]model.Transaction, error)
	CreateTransaction(input *dto.CreateTransactionInput) (*model.Transaction, error)
	UpdateTransactionStatus(id uuid.UUID, input *dto.UpdateTransactionInput) (*model.Transaction, error)
	CancelTransaction(id uuid.UUID) error
	UpdateTransactionFull(id uuid.UUID, input *dto.FullUpdateTransactionInput) (*model.Transaction, error)
	AddDetail(transactionID uuid.UUID, input *dto.AddDetailInput) (*model.Transaction, error)
	RemoveDetail(transactionID, detailID uuid.UUID) error
}

type transactionService struct {
	db           *gorm.DB
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	codes        *CodeGenerator
	hub          *ws.Hub
	now          func() time.Time
}

func NewTransactionService(
	db *gorm.DB,
	products repository.ProductRepository,
	transactions repository.TransactionRepository,
	codes *CodeGenerator,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		db:           db,
		products:     products,
		transactions: transactions,
		codes:        codes,
		hub:          hub,
		now:          time.Now,
	}
}

func (s *transactionService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactions.FindAll()
}

func (s *transactionService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactions.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Transaction", id.String())
	}
	return transaction, err
}

func (s *transactionService) GetTransactionsByType(txType string) ([]model.Transaction, error) {
	if !model.IsValidTransactionType(txType) {
		return nil, apperr.ErrInvalidType
	}
	return s.transactions.FindByType(txType)
}

func (s *transactionService) GetTransactionsByDateRange(start, end time.Time) ([]model.Transaction, error) {
	if start.After(end) {
		return nil, apperr.ErrInvalidDateRange
	}
	return s.transactions.FindByDateRange(start, end)
}

// CreateTransaction builds a multi-line purchase or sale. Product
// validation, code allocation, stock mutation and persistence run in a
// single unit of work; any failure rolls back everything, stock included.
func (s *transactionService) CreateTransaction(input *dto.CreateTransactionInput) (*model.Transaction, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}
	if !model.IsValidTransactionType(input.Type) {
		return nil, apperr.ErrInvalidType
	}

	var created model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateProductsExist(tx, input.Details); err != nil {
			return err
		}

		code, err := s.codes.TransactionCode(tx, input.Type)
		if err != nil {
			return err
		}

		now := s.now()
		transaction := model.Transaction{
			EmissionDate: now,
			Code:         code,
			Type:         input.Type,
			Status:       model.TxActive,
			Message:      input.Message,
		}
		if err := s.transactions.Create(tx, &transaction); err != nil {
			return err
		}

		total := decimal.Zero
		details := make([]model.DetailTransaction, 0, len(input.Details))

		for i, line := range input.Details {
			product, err := s.products.FindForUpdate(tx, line.ProductID)
			if err != nil {
				return err
			}

			productID := product.ID
			detail := model.DetailTransaction{
				TransactionID: transaction.ID,
				ProductID:     &productID,
				Quantity:      line.Quantity,
				Description:   line.Description,
				Code:          DetailCode(code, i+1),
			}
			if line.CustomUnitPrice != nil {
				detail.UnitPrice = *line.CustomUnitPrice
			} else {
				detail.UnitPrice = product.Price
			}
			detail.Recalculate()

			if err := applyStockDelta(product, input.Type, line.Quantity, stockApply, now); err != nil {
				return err
			}
			if err := s.products.Save(tx, product); err != nil {
				return err
			}

			total = total.Add(detail.Total)
			details = append(details, detail)
		}

		if err := s.transactions.CreateDetails(tx, details); err != nil {
			return err
		}

		transaction.TotalAmount = total
		transaction.PriceUnit = total
		if err := s.transactions.Save(tx, &transaction); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.PublishStockUpdate("transaction_created", created)
	return s.GetTransactionByID(created.ID)
}

func (s *transactionService) UpdateTransactionStatus(id uuid.UUID, input *dto.UpdateTransactionInput) (*model.Transaction, error) {
	if err := s.validateStatusInput(input.Status); err != nil {
		return nil, err
	}

	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}
	if transaction.Status == model.TxCancelled {
		return nil, apperr.ErrTransactionClosed
	}

	if input.Status != "" {
		transaction.Status = input.Status
	}
	if input.Message != "" {
		transaction.Message = input.Message
	}

	if err := s.transactions.Save(s.db, transaction); err != nil {
		return nil, err
	}
	return s.GetTransactionByID(id)
}

// CancelTransaction reverses every line's stock effect and marks the
// transaction cancelled, all-or-nothing across lines.
func (s *transactionService) CancelTransaction(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactions.FindByIDForUpdate(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Transaction", id.String())
		}
		if err != nil {
			return err
		}
		if transaction.Status == model.TxCancelled {
			return apperr.ErrAlreadyCancelled
		}

		now := s.now()
		for i := range transaction.Details {
			detail := &transaction.Details[i]
			if detail.ProductID == nil {
				continue
			}

			product, err := s.products.FindForUpdate(tx, *detail.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // product was deleted; nothing to reverse
			}
			if err != nil {
				return err
			}

			if err := applyStockDelta(product, transaction.Type, detail.Quantity, stockReverse, now); err != nil {
				return fmt.Errorf("cannot cancel transaction: %w", err)
			}
			if err := s.products.Save(tx, product); err != nil {
				return err
			}
		}

		transaction.Status = model.TxCancelled
		transaction.Message = fmt.Sprintf("Transaction cancelled on %s", now.Format("2006-01-02 15:04:05"))
		return s.transactions.Save(tx, transaction)
	})
	if err != nil {
		return err
	}

	s.hub.PublishStockUpdate("transaction_cancelled", map[string]interface{}{"transaction_id": id})
	return nil
}

// UpdateTransactionFull edits status, message and existing lines in place.
// Each edited line's old stock effect is reversed and the new one applied;
// totals are recomputed over all lines afterwards. Stock may dip below zero
// transiently while edits are replayed, but no product may end negative.
func (s *transactionService) UpdateTransactionFull(id uuid.UUID, input *dto.FullUpdateTransactionInput) (*model.Transaction, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := s.validateStatusInput(input.Status); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactions.FindByIDForUpdate(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Transaction", id.String())
		}
		if err != nil {
			return err
		}
		if transaction.Status == model.TxCancelled {
			return apperr.ErrTransactionClosed
		}

		if input.Status != "" {
			transaction.Status = input.Status
		}
		if input.Message != "" {
			transaction.Message = input.Message
		}

		now := s.now()
		touched := make(map[uuid.UUID]*model.Product)
		loadProduct := func(productID uuid.UUID) (*model.Product, error) {
			if p, ok := touched[productID]; ok {
				return p, nil
			}
			p, err := s.products.FindForUpdate(tx, productID)
			if err != nil {
				return nil, err
			}
			touched[productID] = p
			return p, nil
		}

		for _, edit := range input.Details {
			existing := findDetail(transaction, edit.DetailID)
			if existing == nil {
				return fmt.Errorf("%w: %s", apperr.ErrLineNotFound, edit.DetailID)
			}

			// Reverse the old stock effect with the old product and quantity
			if existing.ProductID != nil {
				prev, err := loadProduct(*existing.ProductID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// old product gone; its effect cannot be reversed
				} else if err != nil {
					return err
				} else {
					if transaction.Type == model.TxSale {
						prev.Stock += existing.Quantity
					} else {
						prev.Stock -= existing.Quantity
					}
					prev.UpdatedAt = now
				}
			}

			// Resolve the product for the new state
			var productID uuid.UUID
			switch {
			case edit.NewProductID != nil:
				productID = *edit.NewProductID
			case existing.ProductID != nil:
				productID = *existing.ProductID
			default:
				return apperr.NotFound("Product", "none referenced by detail "+edit.DetailID.String())
			}

			product, err := loadProduct(productID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product", productID.String())
			}
			if err != nil {
				return err
			}

			// Apply the new stock effect
			if transaction.Type == model.TxSale {
				if product.Stock < edit.Quantity {
					return &apperr.InsufficientStockError{
						ProductName: product.Name,
						Available:   product.Stock,
						Requested:   edit.Quantity,
					}
				}
				product.Stock -= edit.Quantity
			} else {
				product.Stock += edit.Quantity
			}
			product.UpdatedAt = now

			// Drop the stale preloaded product before repointing the line;
			// saving it would upsert the old product row
			existing.Product = nil
			existing.ProductID = &product.ID
			existing.Quantity = edit.Quantity
			existing.UnitPrice = edit.UnitPrice
			existing.Description = edit.Description
			existing.Recalculate()

			if err := s.transactions.SaveDetail(tx, existing); err != nil {
				return err
			}
		}

		// Edits replay against in-memory stock; enforce the invariant before
		// anything is persisted
		for _, product := range touched {
			if product.Stock < 0 {
				return &apperr.NegativeStockError{ProductName: product.Name}
			}
			if err := s.products.Save(tx, product); err != nil {
				return err
			}
		}

		// Aggregate totals cover every line, not just the edited ones
		total := decimal.Zero
		for _, d := range transaction.Details {
			total = total.Add(d.Total)
		}
		transaction.TotalAmount = total
		transaction.PriceUnit = total

		return s.transactions.Save(tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	s.hub.PublishStockUpdate("transaction_updated", map[string]interface{}{"transaction_id": id})
	return s.GetTransactionByID(id)
}

// AddDetail appends one line to an open transaction.
func (s *transactionService) AddDetail(transactionID uuid.UUID, input *dto.AddDetailInput) (*model.Transaction, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactions.FindByIDForUpdate(tx, transactionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Transaction", transactionID.String())
		}
		if err != nil {
			return err
		}
		if transaction.Status == model.TxCancelled {
			return apperr.ErrTransactionClosed
		}

		product, err := s.products.FindForUpdate(tx, input.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product", input.ProductID.String())
		}
		if err != nil {
			return err
		}

		now := s.now()
		if err := applyStockDelta(product, transaction.Type, input.Quantity, stockApply, now); err != nil {
			return err
		}
		if err := s.products.Save(tx, product); err != nil {
			return err
		}

		productID := product.ID
		detail := model.DetailTransaction{
			TransactionID: transaction.ID,
			ProductID:     &productID,
			Quantity:      input.Quantity,
			Description:   input.Description,
			Code:          DetailCode(transaction.Code, len(transaction.Details)+1),
		}
		if input.CustomUnitPrice != nil {
			detail.UnitPrice = *input.CustomUnitPrice
		} else {
			detail.UnitPrice = product.Price
		}
		detail.Recalculate()

		if err := s.transactions.SaveDetail(tx, &detail); err != nil {
			return err
		}

		total := detail.Total
		for _, d := range transaction.Details {
			total = total.Add(d.Total)
		}
		transaction.TotalAmount = total
		transaction.PriceUnit = total

		return s.transactions.Save(tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	s.hub.PublishStockUpdate("detail_added", map[string]interface{}{"transaction_id": transactionID})
	return s.GetTransactionByID(transactionID)
}

// RemoveDetail deletes one line, reversing its stock effect. A transaction
// always retains at least one line.
func (s *transactionService) RemoveDetail(transactionID, detailID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactions.FindByIDForUpdate(tx, transactionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Transaction", transactionID.String())
		}
		if err != nil {
			return err
		}
		if transaction.Status == model.TxCancelled {
			return apperr.ErrTransactionClosed
		}

		detail := findDetail(transaction, detailID)
		if detail == nil {
			return fmt.Errorf("%w: %s", apperr.ErrLineNotFound, detailID)
		}
		if len(transaction.Details) <= 1 {
			return apperr.ErrCannotRemoveLastLine
		}

		if detail.ProductID != nil {
			product, err := s.products.FindForUpdate(tx, *detail.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// product gone; nothing to reverse
			} else if err != nil {
				return err
			} else {
				if err := applyStockDelta(product, transaction.Type, detail.Quantity, stockReverse, s.now()); err != nil {
					return fmt.Errorf("cannot remove detail: %w", err)
				}
				if err := s.products.Save(tx, product); err != nil {
					return err
				}
			}
		}

		if err := s.transactions.RemoveDetail(tx, detail); err != nil {
			return err
		}

		total := decimal.Zero
		for _, d := range transaction.Details {
			if d.ID != detailID {
				total = total.Add(d.Total)
			}
		}
		transaction.TotalAmount = total
		transaction.PriceUnit = total

		return s.transactions.Save(tx, transaction)
	})
	if err != nil {
		return err
	}

	s.hub.PublishStockUpdate("detail_removed", map[string]interface{}{"transaction_id": transactionID, "detail_id": detailID})
	return nil
}

// validateStatusInput checks an optional status field. Cancellation is
// rejected here: it must go through CancelTransaction, which is the only
// path that reverses stock.
func (s *transactionService) validateStatusInput(status string) error {
	if status == "" {
		return nil
	}
	if !model.IsValidTransactionStatus(status) {
		return apperr.ErrInvalidStatus
	}
	if status == model.TxCancelled {
		return fmt.Errorf("%w: use the cancel operation to cancel a transaction", apperr.ErrInvalidStatus)
	}
	return nil
}

// validateProductsExist batch-checks every referenced product id and reports
// all missing ones at once.
func (s *transactionService) validateProductsExist(tx *gorm.DB, lines []dto.CreateDetailInput) error {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	existing, err := s.products.FindExistingIDs(tx, ids)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return apperr.Validation("product_ids",
			"The following product IDs do not exist: "+strings.Join(missing, ", "))
	}
	return nil
}

func findDetail(transaction *model.Transaction, detailID uuid.UUID) *model.DetailTransaction {
	for i := range transaction.Details {
		if transaction.Details[i].ID == detailID {
			return &transaction.Details[i]
		}
	}
	return nil
}

