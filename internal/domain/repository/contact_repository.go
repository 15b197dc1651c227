package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// ContactRepository define el puerto de persistencia para contactos.
type ContactRepository interface {
	GetByID(id string) (*entity.Contact, error)
	ListByCompany(companyID string) ([]*entity.Contact, error)
	Create(contact *entity.Contact) error
	Update(contact *entity.Contact) error
	Delete(id string) error
}
