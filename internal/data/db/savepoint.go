package db

import (
	"gorm.io/gorm"
)

// WithRowSavepoint runs fn for one source row. Inside an open transaction gorm
// turns the nested Transaction into SAVEPOINT / ROLLBACK TO, so a failing row
// is undone without aborting the batch. The returned string is the
// ClassifyError category when fn failed.
func WithRowSavepoint(tx *gorm.DB, fn func(tx *gorm.DB) error) (string, error) {
	err := tx.Transaction(fn)
	if err != nil {
		return ClassifyError(err), err
	}
	return "", nil
}

// Batch runs fn in one transaction; per-row work inside uses WithRowSavepoint.
func Batch(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}
