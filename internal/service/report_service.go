package service

import (
	"errors"
	"time"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/dto"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService interface {
	GetProductTransactionReport(productID uuid.UUID) (*dto.ProductTransactionReport, error)
	GetProductTransactionReportByCode(productCode string) (*dto.ProductTransactionReport, error)
	GetMultipleProductsReport(productIDs []uuid.UUID) (*dto.MultipleProductsReport, error)
	GetAllProductsReport() (*dto.MultipleProductsReport, error)
}

type reportService struct {
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	now          func() time.Time
}

func NewReportService(products repository.ProductRepository, transactions repository.TransactionRepository) ReportService {
	return &reportService{products: products, transactions: transactions, now: time.Now}
}

// GetProductTransactionReport rebuilds the product's chronological stock
// trajectory from its detail lines. No historical stock is stored anywhere;
// the only durable fact is the CURRENT stock, so the walk runs twice:
// newest to oldest to infer the baseline before the first transaction, then
// oldest to newest to assign each line its stock-after value. Every line is
// walked regardless of status - a cancelled transaction's reversal already
// changed current stock when it was cancelled - but the value summary
// filters to active transactions only.
func (s *reportService) GetProductTransactionReport(productID uuid.UUID) (*dto.ProductTransactionReport, error) {
	product, err := s.products.FindByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product", productID.String())
	}
	if err != nil {
		return nil, err
	}

	details, err := s.transactions.FindDetailsByProduct(productID)
	if err != nil {
		return nil, err
	}

	// Backward pass: step from current stock toward the oldest transaction
	history := make([]dto.TransactionHistoryItem, 0, len(details))
	runningStock := product.Stock

	for _, detail := range details {
		transaction := detail.Transaction
		if transaction == nil {
			continue
		}

		impact := "+"
		if transaction.Type == model.TxSale {
			impact = "-"
		}

		history = append(history, dto.TransactionHistoryItem{
			TransactionID:     transaction.ID,
			TransactionCode:   transaction.Code,
			TransactionDate:   transaction.EmissionDate,
			TransactionType:   transaction.Type,
			TypeDescription:   model.TransactionTypeDescription(transaction.Type),
			TransactionStatus: transaction.Status,
			StatusDescription: model.TransactionStatusDescription(transaction.Status),
			Message:           transaction.Message,
			DetailID:          detail.ID,
			DetailCode:        detail.Code,
			Quantity:          detail.Quantity,
			UnitPrice:         detail.UnitPrice,
			Subtotal:          detail.Subtotal,
			Total:             detail.Total,
			Description:       detail.Description,
			StockImpact:       impact,
			StockChange:       detail.Quantity,
			StockAfter:        runningStock, // provisional; fixed on the forward pass
		})

		// Undo this transaction to move one step back in time
		if transaction.Type == model.TxSale {
			runningStock += detail.Quantity
		} else {
			runningStock -= detail.Quantity
		}
	}

	// Chronological order, oldest first
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	// Forward pass: replay from the inferred baseline
	stock := runningStock
	for i := range history {
		if history[i].StockImpact == "+" {
			stock += history[i].StockChange
		} else {
			stock -= history[i].StockChange
		}
		history[i].StockAfter = stock
	}

	return &dto.ProductTransactionReport{
		Product: dto.ProductSummary{
			ID:           product.ID,
			Code:         product.Code,
			Name:         product.Name,
			Description:  product.Description,
			CurrentPrice: product.Price,
			CurrentStock: product.Stock,
			Status:       product.Status,
			Image:        product.Image,
			CreatedAt:    product.CreatedAt,
			UpdatedAt:    product.UpdatedAt,
		},
		TransactionHistory: history,
		StockSummary:       buildStockSummary(details, product.Stock),
	}, nil
}

func (s *reportService) GetProductTransactionReportByCode(productCode string) (*dto.ProductTransactionReport, error) {
	product, err := s.products.FindByCode(productCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Product", productCode)
	}
	if err != nil {
		return nil, err
	}
	return s.GetProductTransactionReport(product.ID)
}

// GetMultipleProductsReport runs the single-product report per id. Missing
// products do not fail the batch; they are returned in the skipped list.
func (s *reportService) GetMultipleProductsReport(productIDs []uuid.UUID) (*dto.MultipleProductsReport, error) {
	if len(productIDs) == 0 {
		return nil, apperr.Validation("product_ids", "At least one product ID is required")
	}

	seen := make(map[uuid.UUID]bool)
	reports := make([]dto.ProductTransactionReport, 0, len(productIDs))
	skipped := make([]uuid.UUID, 0)

	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		report, err := s.GetProductTransactionReport(id)
		if apperr.IsNotFound(err) {
			skipped = append(skipped, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return &dto.MultipleProductsReport{
		Products:          reports,
		SkippedProductIDs: skipped,
		TotalProducts:     len(reports),
		GeneratedAt:       s.now(),
	}, nil
}

func (s *reportService) GetAllProductsReport() (*dto.MultipleProductsReport, error) {
	ids, err := s.products.FindAllIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.MultipleProductsReport{
			Products:          []dto.ProductTransactionReport{},
			SkippedProductIDs: []uuid.UUID{},
			GeneratedAt:       s.now(),
		}, nil
	}
	return s.GetMultipleProductsReport(ids)
}

// buildStockSummary aggregates quantities and values over active
// transactions only; the transaction count and date range cover all lines.
func buildStockSummary(details []model.DetailTransaction, currentStock int) dto.StockSummary {
	summary := dto.StockSummary{
		CurrentStock:         currentStock,
		TotalPurchaseValue:   decimal.Zero,
		TotalSaleValue:       decimal.Zero,
		AveragePurchasePrice: decimal.Zero,
		AverageSalePrice:     decimal.Zero,
		TotalTransactions:    len(details),
	}

	for _, detail := range details {
		transaction := detail.Transaction
		if transaction == nil {
			continue
		}

		if transaction.Status == model.TxActive {
			switch transaction.Type {
			case model.TxPurchase:
				summary.TotalPurchased += detail.Quantity
				summary.TotalPurchaseValue = summary.TotalPurchaseValue.Add(detail.Total)
			case model.TxSale:
				summary.TotalSold += detail.Quantity
				summary.TotalSaleValue = summary.TotalSaleValue.Add(detail.Total)
			}
		}

		date := transaction.EmissionDate
		if summary.FirstTransactionDate == nil || date.Before(*summary.FirstTransactionDate) {
			d := date
			summary.FirstTransactionDate = &d
		}
		if summary.LastTransactionDate == nil || date.After(*summary.LastTransactionDate) {
			d := date
			summary.LastTransactionDate = &d
		}
	}

	if summary.TotalPurchased > 0 {
		summary.AveragePurchasePrice = summary.TotalPurchaseValue.
			Div(decimal.NewFromInt(int64(summary.TotalPurchased)))
	}
	if summary.TotalSold > 0 {
		summary.AverageSalePrice = summary.TotalSaleValue.
			Div(decimal.NewFromInt(int64(summary.TotalSold)))
	}

	return summary
}
