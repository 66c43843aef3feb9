package service

import (
	"time"

	"go-backoffice-api/internal/apperr"
	"go-backoffice-api/internal/model"
)

type stockDirection int

const (
	stockApply   stockDirection = iota // line is being created or added
	stockReverse                       // line is being removed, replaced or cancelled
)

// applyStockDelta translates a transaction type and line quantity into a
// signed stock change and applies it in memory. Sale+apply and
// purchase+reverse decrease stock; purchase+apply and sale+reverse increase
// it. Decreases that would drive stock below zero fail without mutating the
// product; persistence and rollback are the caller's unit of work.
func applyStockDelta(product *model.Product, txType string, quantity int, dir stockDirection, now time.Time) error {
	decrease := (txType == model.TxSale && dir == stockApply) ||
		(txType == model.TxPurchase && dir == stockReverse)

	if decrease {
		if product.Stock < quantity {
			if dir == stockApply {
				return &apperr.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   quantity,
				}
			}
			return &apperr.NegativeStockError{ProductName: product.Name}
		}
		product.Stock -= quantity
	} else {
		product.Stock += quantity
	}

	product.UpdatedAt = now
	return nil
}
