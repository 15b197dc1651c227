package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el registro de
// stock de un producto. Los métodos For Update se usan dentro de transacciones
// para garantizar consistencia; Qty solo se escribe a través del Stock Ledger.
type StockRepository interface {
	// GetByProductID lee el stock de un producto. Si no existe devuelve un
	// registro en cero (qty 0, min_stock 0), no error.
	GetByProductID(productID string) (*entity.StockRecord, error)
	// GetByProductIDForUpdate igual que GetByProductID pero bloquea la fila
	// (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetByProductIDForUpdate(productID string) (*entity.StockRecord, error)
	// Upsert inserta o actualiza cantidad, stock mínimo y capacidad.
	Upsert(record *entity.StockRecord) error

	// CRUD administrativo (endpoints de stock).
	GetByID(id string) (*entity.StockRecord, error)
	ListByCompany(companyID, orderBy string) ([]*entity.StockRecord, error)
	Create(record *entity.StockRecord) error
	// UpdateLimits actualiza min_stock y capacity. Nunca toca qty.
	UpdateLimits(record *entity.StockRecord) error
	Delete(id string) error
}
