package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByProductID lee el stock de un producto. Si no hay fila devuelve un
// registro en cero, no error: ese producto simplemente no tiene inventario
// y cualquier reserva contra él fallará por stock insuficiente.
func (r *StockRepo) GetByProductID(productID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, qty, min_stock, capacity, created_at, updated_at
		FROM stock_records WHERE product_id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Qty, &s.MinStock, &s.Capacity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// GetByProductIDForUpdate igual que GetByProductID pero bloquea la fila
// (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *StockRepo) GetByProductIDForUpdate(productID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, qty, min_stock, capacity, created_at, updated_at
		FROM stock_records WHERE product_id = $1
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Qty, &s.MinStock, &s.Capacity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el registro de stock por producto.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, qty, min_stock, capacity, created_at, updated_at)
		VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, now(), now())
		ON CONFLICT (product_id)
		DO UPDATE SET qty = EXCLUDED.qty, min_stock = EXCLUDED.min_stock, capacity = EXCLUDED.capacity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Qty, record.MinStock, record.Capacity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de stock por su ID.
func (r *StockRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, qty, min_stock, capacity, created_at, updated_at
		FROM stock_records WHERE id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.Qty, &s.MinStock, &s.Capacity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record by id: %w", err)
	}
	return &s, nil
}

// ListByCompany lista los registros de stock de los productos de una empresa.
func (r *StockRepo) ListByCompany(companyID, orderBy string) ([]*entity.StockRecord, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.product_id, s.qty, s.min_stock, s.capacity, s.created_at, s.updated_at
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1
		ORDER BY %s`, stockOrderClause(orderBy))
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Qty, &s.MinStock, &s.Capacity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create inserta un registro de stock nuevo. Un producto solo puede tener uno.
func (r *StockRepo) Create(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, qty, min_stock, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Qty, record.MinStock, record.Capacity,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	return nil
}

// UpdateLimits actualiza min_stock y capacity. Nunca toca qty: la cantidad
// solo la mutan las operaciones del ledger.
func (r *StockRepo) UpdateLimits(record *entity.StockRecord) error {
	query := `
		UPDATE stock_records SET min_stock = $2, capacity = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, record.ID, record.MinStock, record.Capacity)
	if err != nil {
		return fmt.Errorf("update stock limits: %w", err)
	}
	return nil
}

// Delete elimina un registro de stock por ID.
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	return nil
}
