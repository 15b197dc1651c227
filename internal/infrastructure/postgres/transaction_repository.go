package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// Las compras son registros contables puros: ninguna operación de esta tabla
// toca stock_records.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de compras.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// GetByID obtiene una compra por ID (nil, nil si no existe).
func (r *TransactionRepo) GetByID(id string) (*entity.PurchaseTransaction, error) {
	query := `
		SELECT id, company_id, product_id, employee_id, supplier_cnpj, qty, total_price, selled_price, created_at, updated_at
		FROM purchase_transactions WHERE id = $1`
	var t entity.PurchaseTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.ProductID, &t.EmployeeID, &t.SupplierCNPJ,
		&t.Qty, &t.TotalPrice, &t.SelledPrice, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase transaction: %w", err)
	}
	return &t, nil
}

// ListByCompany lista compras por empresa.
func (r *TransactionRepo) ListByCompany(companyID, orderBy string) ([]*entity.PurchaseTransaction, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, product_id, employee_id, supplier_cnpj, qty, total_price, selled_price, created_at, updated_at
		FROM purchase_transactions WHERE company_id = $1 ORDER BY %s`, saleOrderClause(orderBy))
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list purchase transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseTransaction
	for rows.Next() {
		var t entity.PurchaseTransaction
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.ProductID, &t.EmployeeID, &t.SupplierCNPJ,
			&t.Qty, &t.TotalPrice, &t.SelledPrice, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Create persiste una nueva compra.
func (r *TransactionRepo) Create(tx *entity.PurchaseTransaction) error {
	query := `
		INSERT INTO purchase_transactions (id, company_id, product_id, employee_id, supplier_cnpj, qty, total_price, selled_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CompanyID, tx.ProductID, tx.EmployeeID, tx.SupplierCNPJ,
		tx.Qty, tx.TotalPrice, tx.SelledPrice, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase transaction: %w", err)
	}
	return nil
}

// Update actualiza una compra existente.
func (r *TransactionRepo) Update(tx *entity.PurchaseTransaction) error {
	query := `
		UPDATE purchase_transactions SET product_id = $2, employee_id = $3, supplier_cnpj = $4,
			qty = $5, total_price = $6, selled_price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.EmployeeID, tx.SupplierCNPJ,
		tx.Qty, tx.TotalPrice, tx.SelledPrice, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase transaction: %w", err)
	}
	return nil
}

// Delete elimina una compra por ID.
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase transaction: %w", err)
	}
	return nil
}
