package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Las líneas (SoldItems) pertenecen a la venta: se insertan al crearla, se
// reemplazan completas al actualizarla y caen en cascada al borrarla.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SoldItem) error
	// GetByID devuelve la cabecera (nil, nil si no existe). Las líneas se
	// cargan aparte con GetItemsBySaleID.
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila de la venta
	// (SELECT ... FOR UPDATE). Update y Delete leen la cabecera con este
	// método dentro de su transacción: la decisión de liberar stock depende
	// del estado de pago y leerlo sin bloqueo permitiría una doble liberación
	// frente a una cancelación concurrente.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SoldItem, error)
	DeleteItemsBySaleID(saleID string) error
	// Update actualiza la cabecera (totales, descuento, estado de pago, empleado).
	Update(sale *entity.Sale) error
	// Delete borra la venta y sus líneas.
	Delete(id string) error
	ListByCompany(companyID, orderBy string) ([]*entity.Sale, error)
}
