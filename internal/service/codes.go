package service

import (
	"fmt"
	"math/rand"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"gorm.io/gorm"
)

// CodeGenerator produces the human-readable codes for transactions, detail
// lines and products.
type CodeGenerator struct {
	sequences repository.SequenceRepository
	now       func() time.Time
}

func NewCodeGenerator(sequences repository.SequenceRepository, now func() time.Time) *CodeGenerator {
	if now == nil {
		now = time.Now
	}
	return &CodeGenerator{sequences: sequences, now: now}
}

// TransactionCode allocates the next code for the given type, formatted as
// {VT|CT}-{YYYYMMDD}-{NNNN}. The sequence row is incremented inside the
// caller's database transaction.
func (g *CodeGenerator) TransactionCode(tx *gorm.DB, txType string) (string, error) {
	prefix := "CT" // Compra Transaction
	if txType == model.TxSale {
		prefix = "VT" // Venta Transaction
	}
	date := model.SequenceDate(g.now())

	seq, err := g.sequences.Next(tx, prefix, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, date, seq), nil
}

// ProductCode generates a fresh product code; callers regenerate on
// collision.
func (g *CodeGenerator) ProductCode() string {
	return fmt.Sprintf("PRO-%s-%04d", g.now().Format("20060102150405"), 1000+rand.Intn(9000))
}

// DetailCode derives a line code from its transaction code and the line's
// 1-based position.
func DetailCode(transactionCode string, lineNumber int) string {
	return fmt.Sprintf("%s-%03d", transactionCode, lineNumber)
}
