package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrConstraint = errors.New("constraint violation")

	// ErrForeignKey: the referenced row (recipe, user, tag, ingredient) is gone.
	ErrForeignKey = errors.New("referenced record does not exist")

	// ErrSelfReference: a user tried to relate to themselves.
	ErrSelfReference = errors.New("self reference")
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgFKViolation     = "23503"
)

// translate maps driver specific failures onto the package sentinels, so
// that callers see the same error whether a pre-check or the storage
// constraint caught the problem.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateError(err):
		return ErrDuplicate
	case isForeignKeyError(err):
		return ErrForeignKey
	case isCheckError(err):
		return ErrConstraint
	}
	return err
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key")
}

func isCheckError(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}

func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgFKViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
