package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the transaction and catalog services. Use with errors.Is.
var (
	ErrInvalidType             = errors.New("invalid transaction type: use 'C' for purchase or 'V' for sale")
	ErrInvalidStatus           = errors.New("invalid transaction status: use 'A' for active, 'I' for inactive, or 'C' for cancelled")
	ErrTransactionClosed       = errors.New("cannot modify a cancelled transaction")
	ErrAlreadyCancelled        = errors.New("transaction is already cancelled")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrNegativeStockOnReversal = errors.New("stock reversal would result in negative stock")
	ErrLineNotFound            = errors.New("transaction detail not found")
	ErrCannotRemoveLastLine    = errors.New("cannot remove the last detail from a transaction")
	ErrInvalidDateRange        = errors.New("start date cannot be greater than end date")
)

// NotFoundError reports an unresolved entity reference.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.Key)
}

func NotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError carries a batch of field-level messages so callers see
// every offending value in one response instead of just the first.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, " | ")
}

func Validation(field string, messages ...string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: messages}}
}

// InsufficientStockError wraps ErrInsufficientStock with product context.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s'. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NegativeStockError wraps ErrNegativeStockOnReversal with product context.
type NegativeStockError struct {
	ProductName string
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("would result in negative stock for product '%s'", e.ProductName)
}

func (e *NegativeStockError) Unwrap() error { return ErrNegativeStockOnReversal }

// IsClientError reports whether err should map to a 400-class response.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrTransactionClosed) ||
		errors.Is(err, ErrAlreadyCancelled) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrNegativeStockOnReversal) ||
		errors.Is(err, ErrCannotRemoveLastLine) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.As(err, &ve)
}
