package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// SaleUseCase coordina crear/actualizar/borrar ventas como una unidad atómica
// contra las tablas de ventas y de stock. Es el único código que escribe filas
// de Sale/SoldItem; las cantidades de stock las muta exclusivamente el Ledger.
//
// Invariante que mantiene: la suma de reservas implicadas por las ventas
// confirmadas siempre coincide con los descuentos aplicados a los registros de
// stock, incluso ante fallos parciales (todo o nada por operación).
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	ledger   *stock.Ledger
}

// NewSaleUseCase construye el coordinador.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, ledger *stock.Ledger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, ledger: ledger}
}

// validateItems valida la forma del pedido: al menos una línea, cantidades
// positivas y producto presente. La existencia de employee/company la valida
// la capa de entrada antes de llegar aquí.
func validateItems(items []dto.SaleItemRequest) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Qty <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// sortedByProduct devuelve una copia ordenada por ProductID. Las operaciones
// concurrentes adquieren los bloqueos de fila en el mismo orden y no se
// interbloquean entre sí.
func sortedByProduct(items []dto.SaleItemRequest) []dto.SaleItemRequest {
	out := make([]dto.SaleItemRequest, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// CreateSale crea la venta: reserva stock por cada línea (con chequeo de
// disponibilidad y stock mínimo) y persiste cabecera y líneas, todo en una
// transacción. Si cualquier reserva falla, nada queda escrito y se retorna
// InsufficientStock nombrando el primer producto que falló.
//
// La reserva se aplica sea cual sea el estado de pago: una venta creada ya
// CANCELED también reserva (comportamiento del sistema de origen; pendiente de
// aclaración de producto, no se "corrige" en silencio).
func (uc *SaleUseCase) CreateSale(ctx context.Context, companyID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if companyID == "" || in.EmployeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(in.SoldItems); err != nil {
		return nil, err
	}
	status := entity.PaymentStatus(in.PaymentStatus)
	if status == "" {
		status = entity.PaymentPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		EmployeeID:    in.EmployeeID,
		TotalPrice:    in.TotalPrice,
		Discount:      in.Discount,
		PaymentStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.SoldItems {
		sale.SoldItems = append(sale.SoldItems, &entity.SoldItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
			CreatedAt: now,
		})
	}

	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
		for _, it := range sortedByProduct(in.SoldItems) {
			if err := uc.ledger.TryReserve(stockRepo, it.ProductID, it.Qty); err != nil {
				return err
			}
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.SoldItems {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, sale.SoldItems), nil
}

// UpdateSale reconcilia la venta contra el stock: libera por completo la
// asignación vieja, borra las líneas viejas y, salvo que el nuevo estado sea
// CANCELED, vuelve a descontar las cantidades nuevas. El re-descuento NO
// re-chequea disponibilidad ni stock mínimo (asimetría con Create heredada del
// sistema de origen, fijada por tests). Todos los pasos, incluida la lectura
// de la cabecera y de las líneas viejas, ocurren en una sola transacción con
// la fila de la venta bloqueada: dos updates concurrentes sobre la misma
// venta se serializan y nunca liberan las mismas líneas dos veces.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, companyID, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateItems(in.SoldItems); err != nil {
		return nil, err
	}
	status := entity.PaymentStatus(in.PaymentStatus)
	if status == "" {
		status = entity.PaymentPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	newItems := make([]*entity.SoldItem, 0, len(in.SoldItems))
	for _, it := range in.SoldItems {
		newItems = append(newItems, &entity.SoldItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
			CreatedAt: now,
		})
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
		var err error
		sale, err = saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if sale.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if in.EmployeeID != "" {
			sale.EmployeeID = in.EmployeeID
		}
		sale.TotalPrice = in.TotalPrice
		sale.Discount = in.Discount
		sale.PaymentStatus = status
		sale.UpdatedAt = now

		oldItems, err := saleRepo.GetItemsBySaleID(sale.ID)
		if err != nil {
			return err
		}
		// Revertir íntegra e incondicionalmente la asignación vieja.
		sort.Slice(oldItems, func(i, j int) bool { return oldItems[i].ProductID < oldItems[j].ProductID })
		for _, old := range oldItems {
			if err := uc.ledger.Release(stockRepo, old.ProductID, old.Qty); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItemsBySaleID(sale.ID); err != nil {
			return err
		}
		// Re-aplicar la asignación nueva, salvo venta cancelada.
		if status.HoldsStock() {
			for _, it := range sortedByProduct(in.SoldItems) {
				if err := uc.ledger.Deduct(stockRepo, it.ProductID, it.Qty); err != nil {
					return err
				}
			}
		}
		for _, item := range newItems {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return saleRepo.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, newItems), nil
}

// DeleteSale borra la venta y sus líneas. Si la venta retiene stock (estado
// distinto de CANCELED) se libera cada línea antes de borrar, igual que una
// cancelación vía Update; una venta ya cancelada no libera nada porque su
// reserva se liberó al cancelarla. El estado de pago se lee dentro de la
// transacción con la fila bloqueada: decidir sobre una lectura sin bloqueo
// permitiría liberar dos veces si una cancelación concurrente gana la carrera.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, companyID, saleID string) error {
	return uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if sale.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if sale.PaymentStatus.HoldsStock() {
			items, err := saleRepo.GetItemsBySaleID(sale.ID)
			if err != nil {
				return err
			}
			sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
			for _, it := range items {
				if err := uc.ledger.Release(stockRepo, it.ProductID, it.Qty); err != nil {
					return err
				}
			}
		}
		return saleRepo.Delete(sale.ID)
	})
}

// GetSale obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista las ventas de la empresa (orderBy "asc"|"desc" por fecha).
func (uc *SaleUseCase) ListSales(ctx context.Context, companyID, orderBy string) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByCompany(companyID, orderBy)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items, err := uc.saleRepo.GetItemsBySaleID(s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toSaleResponse(s, items))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale, items []*entity.SoldItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		EmployeeID:    s.EmployeeID,
		TotalPrice:    s.TotalPrice,
		Discount:      s.Discount,
		PaymentStatus: string(s.PaymentStatus),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		SoldItems:     make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.SoldItems = append(resp.SoldItems, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
		})
	}
	return resp
}
