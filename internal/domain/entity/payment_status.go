package entity

// PaymentStatus estado de pago de una venta.
// No se impone un grafo de transiciones: cualquier estado puede seguir a
// cualquier otro. Una política más estricta (ej. prohibir CANCELED -> PAID)
// queda pendiente de definición de producto.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefused  PaymentStatus = "REFUSED"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Valid indica si el valor es uno de los estados conocidos.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefused, PaymentCanceled:
		return true
	}
	return false
}

// HoldsStock indica si una venta en este estado debe retener stock.
// Lo único que el motor de conciliación lee del estado de pago es si la venta
// está cancelada: una venta CANCELED no vuelve a aplicar su reserva en Update.
func (s PaymentStatus) HoldsStock() bool {
	return s != PaymentCanceled
}
