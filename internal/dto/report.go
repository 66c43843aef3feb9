package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSummary struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CurrentStock int             `json:"current_stock"`
	Status       string          `json:"status"`
	Image        string          `json:"image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionHistoryItem is one line of the reconstructed per-product ledger.
type TransactionHistoryItem struct {
	TransactionID     uuid.UUID       `json:"transaction_id"`
	TransactionCode   string          `json:"transaction_code"`
	TransactionDate   time.Time       `json:"transaction_date"`
	TransactionType   string          `json:"transaction_type"`
	TypeDescription   string          `json:"transaction_type_description"`
	TransactionStatus string          `json:"transaction_status"`
	StatusDescription string          `json:"transaction_status_description"`
	Message           string          `json:"transaction_message,omitempty"`
	DetailID          uuid.UUID       `json:"detail_id"`
	DetailCode        string          `json:"detail_code"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Total             decimal.Decimal `json:"total"`
	Description       string          `json:"detail_description,omitempty"`
	StockImpact       string          `json:"stock_impact"` // "+" or "-"
	StockChange       int             `json:"stock_change"`
	StockAfter        int             `json:"stock_after_transaction"`
}

type StockSummary struct {
	CurrentStock         int             `json:"current_stock"`
	TotalPurchased       int             `json:"total_purchased"`
	TotalSold            int             `json:"total_sold"`
	TotalPurchaseValue   decimal.Decimal `json:"total_purchase_value"`
	TotalSaleValue       decimal.Decimal `json:"total_sale_value"`
	AveragePurchasePrice decimal.Decimal `json:"average_purchase_price"`
	AverageSalePrice     decimal.Decimal `json:"average_sale_price"`
	TotalTransactions    int             `json:"total_transactions"`
	FirstTransactionDate *time.Time      `json:"first_transaction_date"`
	LastTransactionDate  *time.Time      `json:"last_transaction_date"`
}

type ProductTransactionReport struct {
	Product            ProductSummary           `json:"product"`
	TransactionHistory []TransactionHistoryItem `json:"transaction_history"`
	StockSummary       StockSummary             `json:"stock_summary"`
}

type MultipleProductsReport struct {
	Products          []ProductTransactionReport `json:"products"`
	SkippedProductIDs []uuid.UUID                `json:"skipped_product_ids"`
	TotalProducts     int                        `json:"total_products"`
	GeneratedAt       time.Time                  `json:"report_generated_at"`
}
