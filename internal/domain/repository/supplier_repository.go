package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
	ListByCompany(companyID string) ([]*entity.Supplier, error)
	Create(supplier *entity.Supplier) error
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
