package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// TransactionUseCase registro de compras a proveedores. Solo contabilidad de
// la compra: la entrada física al stock se maneja por los endpoints de stock.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// Create registra una compra.
func (uc *TransactionUseCase) Create(companyID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	if in.ProductID == "" || in.EmployeeID == "" || in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tx := &entity.PurchaseTransaction{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		ProductID:    in.ProductID,
		EmployeeID:   in.EmployeeID,
		SupplierCNPJ: in.SupplierCNPJ,
		Qty:          in.Qty,
		TotalPrice:   in.TotalPrice,
		SelledPrice:  in.SelledPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// GetByID obtiene una compra, validando tenant.
func (uc *TransactionUseCase) GetByID(companyID, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if tx.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toTransactionResponse(tx), nil
}

// Update actualiza una compra.
func (uc *TransactionUseCase) Update(companyID, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if tx.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.ProductID != "" {
		tx.ProductID = in.ProductID
	}
	if in.EmployeeID != "" {
		tx.EmployeeID = in.EmployeeID
	}
	if in.SupplierCNPJ != "" {
		tx.SupplierCNPJ = in.SupplierCNPJ
	}
	if in.Qty > 0 {
		tx.Qty = in.Qty
	}
	if !in.TotalPrice.IsZero() {
		tx.TotalPrice = in.TotalPrice
	}
	if !in.SelledPrice.IsZero() {
		tx.SelledPrice = in.SelledPrice
	}
	tx.UpdatedAt = time.Now()
	if err := uc.repo.Update(tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// List lista las compras de una empresa.
func (uc *TransactionUseCase) List(companyID, orderBy string) ([]dto.TransactionResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, orderBy)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *toTransactionResponse(tx))
	}
	return items, nil
}

// Delete elimina una compra.
func (uc *TransactionUseCase) Delete(companyID, id string) error {
	tx, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tx == nil {
		return domain.ErrNotFound
	}
	if tx.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toTransactionResponse(t *entity.PurchaseTransaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	return &dto.TransactionResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		ProductID:    t.ProductID,
		EmployeeID:   t.EmployeeID,
		SupplierCNPJ: t.SupplierCNPJ,
		Qty:          t.Qty,
		TotalPrice:   t.TotalPrice,
		SelledPrice:  t.SelledPrice,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
