package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una empresa.
type Product struct {
	ID          string
	CompanyID   string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
