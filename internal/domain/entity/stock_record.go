package entity

import "time"

// StockRecord contador vivo de unidades vendibles de un producto (1:1 con Product).
// Qty es la única fuente de verdad de disponibilidad y solo lo muta el
// Stock Ledger; nunca se recalcula sumando SoldItems ni se escribe desde
// controladores.
type StockRecord struct {
	ID        string
	ProductID string
	Qty       int // unidades disponibles; invariante: >= 0 en el camino de Create
	MinStock  int // colchón que debe quedar tras cualquier venta nueva
	Capacity  int // tope informativo; el ledger no lo impone
	CreatedAt time.Time
	UpdatedAt time.Time
}
