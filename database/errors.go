package database

import (
	"errors"
	"fmt"

	"github.com/brendenGit/Warbler/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateError maps gorm and driver errors onto the model sentinels so
// that nothing above the repositories sees a raw storage error. The
// returned error wraps both the sentinel and the original error.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sentinel = models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		sentinel = models.ErrUniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		sentinel = models.ErrReferentialIntegrity
	}

	var sqliteErr sqlite3.Error
	if sentinel == nil && errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			sentinel = models.ErrUniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			sentinel = models.ErrReferentialIntegrity
		}
	}

	var pgErr *pgconn.PgError
	if sentinel == nil && errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			sentinel = models.ErrUniqueViolation
		case pgForeignKeyViolation:
			sentinel = models.ErrReferentialIntegrity
		}
	}

	if sentinel == nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel, err)
}
