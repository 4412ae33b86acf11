package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// ErrDuplicateKey is returned (wrapped) when an insert hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// Runner is satisfied by both *sql.DB and *sql.Tx.
type Runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// wrapWrite tags unique violations with ErrDuplicateKey so callers can retry
// or report a conflict without knowing about the driver.
func wrapWrite(err error, op string) error {
	if isUniqueViolation(err) {
		return errors.Wrapf(ErrDuplicateKey, "%s: %v", op, err)
	}
	return errors.Wrap(err, op)
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, op)
	}
	return n > 0, nil
}
