package entity

import "time"

// Company empresa (tenant). Todos los recursos del sistema cuelgan de una empresa.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
