package entity

import "time"

// Category categoría de productos de una empresa.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
