package repository

import (
	"errors"

	"go-backoffice-api/internal/model"

	"gorm.io/gorm"
)

// SequenceRepository allocates monotonically increasing values for generated
// transaction codes, one counter row per (prefix, date).
type SequenceRepository interface {
	Next(tx *gorm.DB, prefix, date string) (int, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

// Next increments the counter inside the caller's database transaction, so
// the allocated value is discarded together with everything else on
// rollback. Concurrent first allocations for a new (prefix, date) pair
// serialize on the unique index.
func (r *sequenceRepo) Next(tx *gorm.DB, prefix, date string) (int, error) {
	var seq model.CodeSequence
	err := forUpdate(tx).
		Where("prefix = ? AND date = ?", prefix, date).
		First(&seq).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = model.CodeSequence{Prefix: prefix, Date: date, LastValue: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	seq.LastValue++
	if err := tx.Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
