package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors so callers never
// inspect gorm or postgres error types. The string checks cover the sqlite
// driver used in tests, which exposes no typed constraint errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return domain.ErrConflict
		case "23514": // check_violation
			return domain.ErrOutOfRange
		case "23503": // foreign_key_violation
			return domain.ErrNotFound
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domain.ErrConflict
	case strings.Contains(msg, "CHECK constraint failed"):
		return domain.ErrOutOfRange
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domain.ErrNotFound
	}
	return err
}
