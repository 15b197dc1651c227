package sales

import (
	"context"

	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el coordinador de
// ventas: o se confirman juntos la venta, sus líneas y los ajustes de stock, o
// no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
	) error) error
}
