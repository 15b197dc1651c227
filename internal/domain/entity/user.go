package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User cuenta de acceso al sistema (login con email y password).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "employee"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
