package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en sold_items con FK a sales y ON DELETE CASCADE.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta. Las líneas se insertan con CreateItem.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, employee_id, total_price, discount, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.EmployeeID, sale.TotalPrice, sale.Discount,
		string(sale.PaymentStatus), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SoldItem) error {
	query := `
		INSERT INTO sold_items (id, sale_id, product_id, qty, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Qty, item.Price, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sold item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta (nil, nil si no existe).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, employee_id, total_price, discount, payment_status, created_at, updated_at
		FROM sales WHERE id = $1`
	return r.getHeader(query, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila hasta el fin de la
// transacción. Serializa Update/Delete concurrentes sobre la misma venta.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, employee_id, total_price, discount, payment_status, created_at, updated_at
		FROM sales WHERE id = $1
		FOR UPDATE`
	return r.getHeader(query, id)
}

func (r *SaleRepo) getHeader(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.TotalPrice, &s.Discount, &status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.PaymentStatus = entity.PaymentStatus(status)
	return &s, nil
}

// GetItemsBySaleID carga las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SoldItem, error) {
	query := `
		SELECT id, sale_id, product_id, qty, price, created_at
		FROM sold_items WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sold items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SoldItem
	for rows.Next() {
		var it entity.SoldItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Qty, &it.Price, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sold item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// DeleteItemsBySaleID borra todas las líneas de una venta (reemplazo completo en Update).
func (r *SaleRepo) DeleteItemsBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sold_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sold items: %w", err)
	}
	return nil
}

// Update actualiza la cabecera de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET employee_id = $2, total_price = $3, discount = $4, payment_status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.EmployeeID, sale.TotalPrice, sale.Discount, string(sale.PaymentStatus), sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete borra la venta; sold_items cae en cascada por FK.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListByCompany lista las ventas de una empresa con sus líneas.
func (r *SaleRepo) ListByCompany(companyID, orderBy string) ([]*entity.Sale, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, employee_id, total_price, discount, payment_status, created_at, updated_at
		FROM sales WHERE company_id = $1 ORDER BY %s`, saleOrderClause(orderBy))
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var status string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.TotalPrice, &s.Discount, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PaymentStatus = entity.PaymentStatus(status)
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.GetItemsBySaleID(s.ID)
		if err != nil {
			return nil, err
		}
		s.SoldItems = items
	}
	return list, nil
}
