package entity

import "time"

// Supplier proveedor de mercadería de una empresa.
type Supplier struct {
	ID                string
	CompanyID         string
	Name              string
	CorporateReason   string
	CNPJ              string
	Email             string
	Phone             string
	Address           string
	City              string
	Niche             string
	StartContractDate time.Time
	EndContractDate   time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
