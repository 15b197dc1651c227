package stock

import (
	"time"

	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// Ledger es el único camino de código autorizado para mutar StockRecord.Qty.
// Todos los métodos reciben el StockRepository atado a la transacción del
// caller y bloquean la fila (SELECT ... FOR UPDATE) antes de decidir, de modo
// que la decisión y su escritura son inseparables frente a operaciones
// concurrentes sobre el mismo producto.
type Ledger struct{}

// NewLedger construye el ledger (sin estado; las escrituras van por el repo del caller).
func NewLedger() *Ledger {
	return &Ledger{}
}

// TryReserve descuenta qty unidades del stock de un producto si hay
// disponibilidad y la venta no rompe el stock mínimo:
//
//	record.Qty >= qty && record.Qty - qty >= record.MinStock
//
// Si la condición no se cumple retorna *InsufficientStockError y no cambia
// nada. Un producto sin registro de stock se comporta como registro en cero y
// por tanto falla la reserva (comportamiento del sistema de origen).
func (l *Ledger) TryReserve(repo repository.StockRepository, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	record, err := repo.GetByProductIDForUpdate(productID)
	if err != nil {
		return err
	}
	if record.Qty < qty || record.Qty-qty < record.MinStock {
		return domain.NewInsufficientStockError(productID)
	}
	record.Qty -= qty
	record.UpdatedAt = time.Now()
	return repo.Upsert(record)
}

// Release devuelve qty unidades al stock de un producto. No hay tope contra
// Capacity: la capacidad es informativa y el sistema de origen nunca la impuso.
//
// Si el producto no tiene registro de stock (por ejemplo, fue borrado con la
// venta aún viva), el camino de registro-en-cero hace que el Upsert cree uno
// nuevo con qty y con minStock/capacity en cero. Las unidades devueltas no se
// pierden; los límites los repone el endpoint administrativo de stock.
func (l *Ledger) Release(repo repository.StockRepository, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	record, err := repo.GetByProductIDForUpdate(productID)
	if err != nil {
		return err
	}
	record.Qty += qty
	record.UpdatedAt = time.Now()
	return repo.Upsert(record)
}

// Deduct descuenta qty unidades SIN verificar disponibilidad ni stock mínimo.
// Es el paso de re-aplicación del camino Update, que a diferencia de Create no
// re-chequea la reserva; una actualización puede dejar el stock por debajo del
// mínimo. Asimetría heredada del sistema de origen, fijada por tests.
func (l *Ledger) Deduct(repo repository.StockRepository, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	record, err := repo.GetByProductIDForUpdate(productID)
	if err != nil {
		return err
	}
	record.Qty -= qty
	record.UpdatedAt = time.Now()
	return repo.Upsert(record)
}
