package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en el body de create/update.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	EmployeeID    string            `json:"employee_id"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentStatus string            `json:"payment_status"` // PENDING | PAID | REFUSED | CANCELED (default PENDING)
	SoldItems     []SaleItemRequest `json:"sold_items"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Las líneas reemplazan
// completas a las existentes, no se diffean.
type UpdateSaleRequest struct {
	EmployeeID    string            `json:"employee_id"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentStatus string            `json:"payment_status"`
	SoldItems     []SaleItemRequest `json:"sold_items"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	EmployeeID    string             `json:"employee_id"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	Discount      decimal.Decimal    `json:"discount"`
	PaymentStatus string             `json:"payment_status"`
	SoldItems     []SaleItemResponse `json:"sold_items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
