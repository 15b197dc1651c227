package entity

import "time"

// Contact contacto comercial de una empresa (clientes, referidos).
type Contact struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
