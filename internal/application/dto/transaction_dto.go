package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest entrada para registrar una compra a proveedor.
type TransactionRequest struct {
	ProductID    string          `json:"product_id"`
	EmployeeID   string          `json:"employee_id"`
	SupplierCNPJ string          `json:"supplier_cnpj"`
	Qty          int             `json:"qty"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SelledPrice  decimal.Decimal `json:"selled_price"`
}

// TransactionResponse salida de una compra a proveedor.
type TransactionResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	ProductID    string          `json:"product_id"`
	EmployeeID   string          `json:"employee_id"`
	SupplierCNPJ string          `json:"supplier_cnpj"`
	Qty          int             `json:"qty"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SelledPrice  decimal.Decimal `json:"selled_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
