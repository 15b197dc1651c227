package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseTransaction compra de mercadería a un proveedor.
// Es un registro contable de la compra; la entrada física al stock se maneja
// por separado (endpoints de stock), igual que en el sistema original.
type PurchaseTransaction struct {
	ID           string
	CompanyID    string
	ProductID    string
	EmployeeID   string
	SupplierCNPJ string
	Qty          int
	TotalPrice   decimal.Decimal
	SelledPrice  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
