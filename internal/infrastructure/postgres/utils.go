package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation. Lo disparan el SKU por empresa,
// el email por empresa y el PK de stock_movements.
const codeUniqueViolation = "23505"

// isUniqueViolation detecta choques de constraint único para traducirlos a
// errores de dominio (ErrDuplicate, ErrEmailAlreadyExists) en los repos.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
