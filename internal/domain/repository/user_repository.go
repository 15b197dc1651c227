package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (cuentas de acceso).
type UserRepository interface {
	Create(user *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
}
