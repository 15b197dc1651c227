package dto

import "time"

// CreateStockRequest body para POST /api/stock: alta del registro de stock de
// un producto con su cantidad inicial.
type CreateStockRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
	MinStock  int    `json:"min_stock"`
	Capacity  int    `json:"capacity"`
}

// UpdateStockRequest body para PUT /api/stock/:id. Solo stock mínimo y
// capacidad: la cantidad nunca se escribe por estos endpoints, solo la muta el
// ledger dentro de las operaciones de venta.
type UpdateStockRequest struct {
	MinStock *int `json:"min_stock"`
	Capacity *int `json:"capacity"`
}

// StockResponse salida de un registro de stock.
type StockResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Qty       int       `json:"qty"`
	MinStock  int       `json:"min_stock"`
	Capacity  int       `json:"capacity"`
	LowStock  bool      `json:"low_stock"` // qty <= min_stock
	UpdatedAt time.Time `json:"updated_at"`
}
