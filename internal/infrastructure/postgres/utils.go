package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isRetryableTxError verifica si la transacción falló por un conflicto de
// concurrencia que vale la pena reintentar: serialization_failure (40001)
// o deadlock_detected (40P01).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// saleOrderClause traduce el parámetro orderBy de la API a una cláusula ORDER BY
// segura. Solo se aceptan valores de una lista blanca; cualquier otro valor cae
// al orden por fecha descendente.
func saleOrderClause(orderBy string) string {
	switch orderBy {
	case "asc", "created_asc":
		return "created_at ASC"
	case "total_asc":
		return "total_price ASC"
	case "total_desc":
		return "total_price DESC"
	default:
		return "created_at DESC"
	}
}

// stockOrderClause igual que saleOrderClause pero para registros de stock.
func stockOrderClause(orderBy string) string {
	switch orderBy {
	case "qty_asc":
		return "s.qty ASC"
	case "qty_desc":
		return "s.qty DESC"
	case "created_asc":
		return "s.created_at ASC"
	default:
		return "s.created_at DESC"
	}
}
