package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Insert-error categories reported per table.
const (
	ErrKindConflict   = "conflict"
	ErrKindForeignKey = "foreign_key"
	ErrKindNotNull    = "not_null"
	ErrKindData       = "data"
	ErrKindOther      = "other"
)

// ClassifyError maps a write error to an insert-error category. Postgres errors
// are classified by SQLSTATE, SQLite errors by their constraint message.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return ErrKindConflict
		case pgErr.Code == "23503":
			return ErrKindForeignKey
		case pgErr.Code == "23502":
			return ErrKindNotNull
		case strings.HasPrefix(pgErr.Code, "22"):
			return ErrKindData
		}
		return ErrKindOther
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrKindConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrKindForeignKey
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrKindConflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrKindForeignKey
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return ErrKindNotNull
	case strings.Contains(msg, "datatype mismatch"):
		return ErrKindData
	}
	return ErrKindOther
}
