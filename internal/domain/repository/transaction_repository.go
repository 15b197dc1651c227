package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para compras a proveedores.
type TransactionRepository interface {
	GetByID(id string) (*entity.PurchaseTransaction, error)
	ListByCompany(companyID, orderBy string) ([]*entity.PurchaseTransaction, error)
	Create(tx *entity.PurchaseTransaction) error
	Update(tx *entity.PurchaseTransaction) error
	Delete(id string) error
}
