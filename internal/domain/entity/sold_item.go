package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SoldItem línea de una venta: cantidad vendida de un producto a un precio.
// Registra historia/asignación, no disponibilidad: la disponibilidad vive
// únicamente en StockRecord.Qty.
type SoldItem struct {
	ID        string
	SaleID    string
	ProductID string
	Qty       int
	Price     decimal.Decimal
	CreatedAt time.Time
}
