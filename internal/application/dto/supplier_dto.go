package dto

import "time"

// SupplierRequest entrada para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name              string    `json:"name"`
	CorporateReason   string    `json:"corporate_reason"`
	CNPJ              string    `json:"cnpj"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	Niche             string    `json:"niche"`
	StartContractDate time.Time `json:"start_contract_date"`
	EndContractDate   time.Time `json:"end_contract_date"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	Name              string    `json:"name"`
	CorporateReason   string    `json:"corporate_reason"`
	CNPJ              string    `json:"cnpj"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	Niche             string    `json:"niche"`
	StartContractDate time.Time `json:"start_contract_date"`
	EndContractDate   time.Time `json:"end_contract_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ContactRequest entrada para crear/actualizar un contacto.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
