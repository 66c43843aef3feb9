package model

import "time"

// CodeSequence is a storage-backed counter for generated transaction codes,
// one row per (prefix, date). Incrementing the row inside the caller's
// database transaction serializes concurrent code allocations.
type CodeSequence struct {
	BaseModel
	Prefix    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_code_seq" json:"prefix"`
	Date      string `gorm:"type:varchar(8);not null;uniqueIndex:idx_code_seq" json:"date"` // YYYYMMDD
	LastValue int    `gorm:"not null;default:0" json:"last_value"`
}

// SequenceDate formats the date key for a sequence row.
func SequenceDate(t time.Time) string {
	return t.Format("20060102")
}
