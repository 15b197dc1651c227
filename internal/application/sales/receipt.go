package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// ReceiptLine línea resuelta para el comprobante: nombre del producto ya
// cargado y subtotal calculado.
type ReceiptLine struct {
	ProductName string
	Qty         int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator renderiza el comprobante de una venta como PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, company *entity.Company, lines []ReceiptLine) ([]byte, error)
}

// ReceiptUseCase arma el comprobante PDF de una venta: resuelve empresa,
// líneas y nombres de producto y delega el render al generador.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso del comprobante.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// GenerateReceipt genera el PDF del comprobante de la venta.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, companyID, saleID string) ([]byte, error) {
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

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.productRepo.GetByID(it.ProductID); err != nil {
			return nil, err
		} else if p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Qty:         it.Qty,
			UnitPrice:   it.Price,
			Subtotal:    it.Price.Mul(decimal.NewFromInt(int64(it.Qty))),
		})
	}

	return uc.generator.GenerateReceiptPDF(ctx, sale, company, lines)
}
