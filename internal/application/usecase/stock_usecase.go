package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// StockUseCase administración de registros de stock. Da de alta el registro de
// un producto con su cantidad inicial y permite ajustar stock mínimo y
// capacidad. Después del alta, Qty solo lo muta el ledger dentro de las
// operaciones de venta: estos endpoints nunca escriben cantidades.
type StockUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, productRepo: productRepo}
}

// Create da de alta el registro de stock de un producto con su cantidad inicial.
func (uc *StockUseCase) Create(companyID string, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.Qty < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	record := &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Qty:       in.Qty,
		MinStock:  in.MinStock,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stockRepo.Create(record); err != nil {
		return nil, err
	}
	return toStockResponse(record), nil
}

// GetByID obtiene un registro de stock, validando tenant vía el producto.
func (uc *StockUseCase) GetByID(companyID, id string) (*dto.StockResponse, error) {
	record, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(record.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toStockResponse(record), nil
}

// Update ajusta stock mínimo y capacidad. La cantidad no es modificable aquí.
func (uc *StockUseCase) Update(companyID, id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	record, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(record.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		record.MinStock = *in.MinStock
	}
	if in.Capacity != nil {
		record.Capacity = *in.Capacity
	}
	record.UpdatedAt = time.Now()
	if err := uc.stockRepo.UpdateLimits(record); err != nil {
		return nil, err
	}
	return toStockResponse(record), nil
}

// Delete elimina el registro de stock de un producto. La venta de ese producto
// pasa a fallar por stock insuficiente (registro ausente = registro en cero).
func (uc *StockUseCase) Delete(companyID, id string) error {
	record, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(record.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.stockRepo.Delete(id)
}

// List lista los registros de stock de una empresa (orderBy "asc"|"desc" por producto).
func (uc *StockUseCase) List(companyID, orderBy string) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.ListByCompany(companyID, orderBy)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toStockResponse(r))
	}
	return items, nil
}

func toStockResponse(r *entity.StockRecord) *dto.StockResponse {
	if r == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Qty:       r.Qty,
		MinStock:  r.MinStock,
		Capacity:  r.Capacity,
		LowStock:  r.Qty <= r.MinStock,
		UpdatedAt: r.UpdatedAt,
	}
}
