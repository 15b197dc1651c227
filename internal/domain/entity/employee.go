package entity

import "time"

// Employee empleado de una empresa; las ventas referencian al empleado que las registró.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
