package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para empleados.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
	ListByCompany(companyID string) ([]*entity.Employee, error)
	Create(employee *entity.Employee) error
	Update(employee *entity.Employee) error
	Delete(id string) error
}
