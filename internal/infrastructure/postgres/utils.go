package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Catalogo-api/internal/domain"
)

const uniqueViolationCode = "23505"

// asUniqueViolation traduce una violación de constraint único (23505) al error de dominio,
// conservando el detalle de PostgreSQL ("Key (title)=(Shirt) already exists.").
// Cualquier otro error se devuelve tal cual.
func asUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return &domain.UniqueViolationError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail}
	}
	return err
}
