package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	ListByCompany(companyID string) ([]*entity.Category, error)
	Create(category *entity.Category) error
	Update(category *entity.Category) error
	Delete(id string) error
}
