package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa un pedido de venta con sus líneas (SoldItems).
// Las líneas pertenecen en exclusiva a la venta: en un Update se reemplazan
// completas (borrar e insertar), nunca se diffean; al borrar la venta se
// eliminan en cascada.
type Sale struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	TotalPrice    decimal.Decimal
	Discount      decimal.Decimal
	PaymentStatus PaymentStatus
	SoldItems     []*SoldItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
