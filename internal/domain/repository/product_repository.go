package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	ListByCompany(companyID string) ([]*entity.Product, error)
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	Delete(id string) error
}
