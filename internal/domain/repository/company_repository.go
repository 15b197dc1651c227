package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	GetByID(id string) (*entity.Company, error)
	List() ([]*entity.Company, error)
	Create(company *entity.Company) error
	Update(company *entity.Company) error
}
