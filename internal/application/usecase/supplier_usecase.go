package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor para la empresa.
func (uc *SupplierUseCase) Create(companyID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		Name:              in.Name,
		CorporateReason:   in.CorporateReason,
		CNPJ:              in.CNPJ,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		Niche:             in.Niche,
		StartContractDate: in.StartContractDate,
		EndContractDate:   in.EndContractDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor, validando tenant.
func (uc *SupplierUseCase) GetByID(companyID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(companyID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	if in.CorporateReason != "" {
		supplier.CorporateReason = in.CorporateReason
	}
	if in.CNPJ != "" {
		supplier.CNPJ = in.CNPJ
	}
	if in.Email != "" {
		supplier.Email = in.Email
	}
	if in.Phone != "" {
		supplier.Phone = in.Phone
	}
	if in.Address != "" {
		supplier.Address = in.Address
	}
	if in.City != "" {
		supplier.City = in.City
	}
	if in.Niche != "" {
		supplier.Niche = in.Niche
	}
	if !in.StartContractDate.IsZero() {
		supplier.StartContractDate = in.StartContractDate
	}
	if !in.EndContractDate.IsZero() {
		supplier.EndContractDate = in.EndContractDate
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores de una empresa.
func (uc *SupplierUseCase) List(companyID string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(companyID, id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:                s.ID,
		CompanyID:         s.CompanyID,
		Name:              s.Name,
		CorporateReason:   s.CorporateReason,
		CNPJ:              s.CNPJ,
		Email:             s.Email,
		Phone:             s.Phone,
		Address:           s.Address,
		City:              s.City,
		Niche:             s.Niche,
		StartContractDate: s.StartContractDate,
		EndContractDate:   s.EndContractDate,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
