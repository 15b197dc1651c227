package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/sales"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// ── Fakes en memoria ───────────────────────────────────────────────────────────

// memStockRepo repositorio de stock en memoria indexado por product_id.
// Producto sin registro = registro en cero, igual que el repositorio real.
type memStockRepo struct {
	records map[string]*entity.StockRecord
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{records: make(map[string]*entity.StockRecord)}
}

func (f *memStockRepo) seed(productID string, qty, minStock int) {
	f.records[productID] = &entity.StockRecord{ID: "stk-" + productID, ProductID: productID, Qty: qty, MinStock: minStock}
}

func (f *memStockRepo) qty(productID string) int {
	if r, ok := f.records[productID]; ok {
		return r.Qty
	}
	return 0
}

func (f *memStockRepo) snapshot() map[string]entity.StockRecord {
	out := make(map[string]entity.StockRecord, len(f.records))
	for k, v := range f.records {
		out[k] = *v
	}
	return out
}

func (f *memStockRepo) restore(snap map[string]entity.StockRecord) {
	f.records = make(map[string]*entity.StockRecord, len(snap))
	for k, v := range snap {
		cp := v
		f.records[k] = &cp
	}
}

func (f *memStockRepo) GetByProductID(productID string) (*entity.StockRecord, error) {
	if r, ok := f.records[productID]; ok {
		cp := *r
		return &cp, nil
	}
	return &entity.StockRecord{ProductID: productID}, nil
}

func (f *memStockRepo) GetByProductIDForUpdate(productID string) (*entity.StockRecord, error) {
	return f.GetByProductID(productID)
}

func (f *memStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	f.records[record.ProductID] = &cp
	return nil
}

func (f *memStockRepo) GetByID(id string) (*entity.StockRecord, error) { return nil, nil }
func (f *memStockRepo) ListByCompany(companyID, orderBy string) ([]*entity.StockRecord, error) {
	return nil, nil
}
func (f *memStockRepo) Create(record *entity.StockRecord) error       { return f.Upsert(record) }
func (f *memStockRepo) UpdateLimits(record *entity.StockRecord) error { return f.Upsert(record) }
func (f *memStockRepo) Delete(id string) error                        { return nil }

// memSaleRepo repositorio de ventas en memoria.
type memSaleRepo struct {
	sales map[string]*entity.Sale
	items map[string][]*entity.SoldItem // por sale_id
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SoldItem),
	}
}

func (f *memSaleRepo) snapshot() (map[string]entity.Sale, map[string][]entity.SoldItem) {
	s := make(map[string]entity.Sale, len(f.sales))
	for k, v := range f.sales {
		s[k] = *v
	}
	it := make(map[string][]entity.SoldItem, len(f.items))
	for k, list := range f.items {
		cp := make([]entity.SoldItem, len(list))
		for i, item := range list {
			cp[i] = *item
		}
		it[k] = cp
	}
	return s, it
}

func (f *memSaleRepo) restore(s map[string]entity.Sale, it map[string][]entity.SoldItem) {
	f.sales = make(map[string]*entity.Sale, len(s))
	for k, v := range s {
		cp := v
		f.sales[k] = &cp
	}
	f.items = make(map[string][]*entity.SoldItem, len(it))
	for k, list := range it {
		cps := make([]*entity.SoldItem, len(list))
		for i, item := range list {
			cp := item
			cps[i] = &cp
		}
		f.items[k] = cps
	}
}

func (f *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.SoldItems = nil
	f.sales[sale.ID] = &cp
	return nil
}

func (f *memSaleRepo) CreateItem(item *entity.SoldItem) error {
	cp := *item
	f.items[item.SaleID] = append(f.items[item.SaleID], &cp)
	return nil
}

func (f *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := f.sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// GetByIDForUpdate delega en GetByID: el bloqueo de fila lo emula el mutex
// del runner, que serializa las transacciones completas.
func (f *memSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return f.GetByID(id)
}

func (f *memSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SoldItem, error) {
	list := f.items[saleID]
	out := make([]*entity.SoldItem, len(list))
	for i, item := range list {
		cp := *item
		out[i] = &cp
	}
	return out, nil
}

func (f *memSaleRepo) DeleteItemsBySaleID(saleID string) error {
	delete(f.items, saleID)
	return nil
}

func (f *memSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	cp.SoldItems = nil
	f.sales[sale.ID] = &cp
	return nil
}

func (f *memSaleRepo) Delete(id string) error {
	delete(f.sales, id)
	delete(f.items, id)
	return nil
}

func (f *memSaleRepo) ListByCompany(companyID, orderBy string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTxRunner serializa las "transacciones" con un mutex y revierte los repos
// al estado previo si el callback falla, emulando el rollback de PostgreSQL.
type memTxRunner struct {
	mu        sync.Mutex
	saleRepo  *memSaleRepo
	stockRepo *memStockRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	salesSnap, itemsSnap := r.saleRepo.snapshot()
	stockSnap := r.stockRepo.snapshot()

	if err := fn(r.saleRepo, r.stockRepo); err != nil {
		r.saleRepo.restore(salesSnap, itemsSnap)
		r.stockRepo.restore(stockSnap)
		return err
	}
	return nil
}

// ── Setup ──────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
	empleado = "emp-1"
)

func newFixture() (*sales.SaleUseCase, *memSaleRepo, *memStockRepo) {
	saleRepo := newMemSaleRepo()
	stockRepo := newMemStockRepo()
	runner := &memTxRunner{saleRepo: saleRepo, stockRepo: stockRepo}
	uc := sales.NewSaleUseCase(runner, saleRepo, stock.NewLedger())
	return uc, saleRepo, stockRepo
}

func saleRequest(status string, items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		EmployeeID:    empleado,
		TotalPrice:    decimal.NewFromInt(100),
		Discount:      decimal.Zero,
		PaymentStatus: status,
		SoldItems:     items,
	}
}

func item(productID string, qty int) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Qty: qty, Price: decimal.NewFromInt(10)}
}

// ── CreateSale ─────────────────────────────────────────────────────────────────

func TestCrearVenta_ReservaStockYPersiste(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 0)
	stockRepo.seed("p2", 5, 0)

	out, err := uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("p1", 3), item("p2", 2)))

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 7, stockRepo.qty("p1"))
	assert.Equal(t, 3, stockRepo.qty("p2"))
	assert.Len(t, out.SoldItems, 2)

	persisted, err := saleRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, entity.PaymentPending, persisted.PaymentStatus)
}

func TestCrearVenta_StockInsuficienteNoEscribeNada(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 0)
	stockRepo.seed("p2", 1, 0) // insuficiente para qty 5

	_, err := uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("p1", 3), item("p2", 5)))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Atomicidad: la reserva de p1 que sí alcanzó debe revertirse.
	assert.Equal(t, 10, stockRepo.qty("p1"))
	assert.Equal(t, 1, stockRepo.qty("p2"))
	assert.Empty(t, saleRepo.sales, "no debe quedar ninguna venta escrita")
}

func TestCrearVenta_RompeStockMinimoFalla(t *testing.T) {
	uc, _, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 8)

	_, err := uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("p1", 3)))

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "p1", insErr.ProductID)
	assert.Equal(t, 10, stockRepo.qty("p1"))
}

func TestCrearVenta_CanceladaTambienReservaStock(t *testing.T) {
	// Una venta creada directamente en CANCELED también descuenta stock.
	uc, _, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 0)

	out, err := uc.CreateSale(context.Background(), companyA, saleRequest("CANCELED", item("p1", 4)))

	require.NoError(t, err)
	assert.Equal(t, "CANCELED", out.PaymentStatus)
	assert.Equal(t, 6, stockRepo.qty("p1"), "crear en CANCELED descuenta igual que cualquier otro estado")
}

func TestCrearVenta_EstadoPorDefectoPending(t *testing.T) {
	uc, _, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 0)

	out, err := uc.CreateSale(context.Background(), companyA, saleRequest("", item("p1", 1)))

	require.NoError(t, err)
	assert.Equal(t, "PENDING", out.PaymentStatus)
}

func TestCrearVenta_ValidacionDeEntrada(t *testing.T) {
	uc, _, stockRepo := newFixture()
	stockRepo.seed("p1", 10, 0)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, companyA, saleRequest("PENDING"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateSale(ctx, companyA, saleRequest("PENDING", item("p1", 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CreateSale(ctx, companyA, saleRequest("PENDING", item("", 2)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto vacío")

	_, err = uc.CreateSale(ctx, companyA, saleRequest("ESTADO_RARO", item("p1", 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado de pago desconocido")

	assert.Equal(t, 10, stockRepo.qty("p1"))
}

func TestCrearVenta_ProductoSinRegistroDeStock(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("sin-stock", 1)))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── UpdateSale ─────────────────────────────────────────────────────────────────

func crearVentaBase(t *testing.T, uc *sales.SaleUseCase, stockRepo *memStockRepo) string {
	t.Helper()
	stockRepo.seed("p1", 10, 0)
	stockRepo.seed("p2", 10, 0)
	out, err := uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("p1", 4)))
	require.NoError(t, err)
	return out.ID
}

func updateRequest(status string, items ...dto.SaleItemRequest) dto.UpdateSaleRequest {
	return dto.UpdateSaleRequest{
		EmployeeID:    empleado,
		TotalPrice:    decimal.NewFromInt(100),
		Discount:      decimal.Zero,
		PaymentStatus: status,
		SoldItems:     items,
	}
}

func TestActualizarVenta_LiberaYReaplica(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 10-4 = 6

	// Cambiar la venta de 4x p1 a 2x p2.
	out, err := uc.UpdateSale(context.Background(), companyA, saleID, updateRequest("PAID", item("p2", 2)))

	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "las unidades viejas se liberan")
	assert.Equal(t, 8, stockRepo.qty("p2"), "las unidades nuevas se descuentan")
	assert.Equal(t, "PAID", out.PaymentStatus)

	items, err := saleRepo.GetItemsBySaleID(saleID)
	require.NoError(t, err)
	require.Len(t, items, 1, "las líneas se reemplazan completas")
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestActualizarVenta_CanceladaLiberaSinReaplicar(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 6

	out, err := uc.UpdateSale(context.Background(), companyA, saleID, updateRequest("CANCELED", item("p1", 4)))

	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "cancelar devuelve el stock y no re-descuenta")
	assert.Equal(t, "CANCELED", out.PaymentStatus)

	// Las líneas nuevas sí se persisten aunque no retengan stock.
	items, err := saleRepo.GetItemsBySaleID(saleID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestActualizarVenta_SinRechequeoDeDisponibilidad(t *testing.T) {
	// Update re-aplica sin verificar disponibilidad: puede dejar el stock
	// negativo. Asimetría deliberada con Create.
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 6

	_, err := uc.UpdateSale(context.Background(), companyA, saleID, updateRequest("PENDING", item("p1", 20)))

	require.NoError(t, err, "el update no falla por stock insuficiente")
	assert.Equal(t, -10, stockRepo.qty("p1"), "6 liberados +4 = 10, menos 20 = -10")
}

func TestActualizarVenta_ReactivarVentaCancelada(t *testing.T) {
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 6
	ctx := context.Background()

	_, err := uc.UpdateSale(ctx, companyA, saleID, updateRequest("CANCELED", item("p1", 4)))
	require.NoError(t, err)
	require.Equal(t, 10, stockRepo.qty("p1"))

	// Reactivar: libera las líneas actuales (que no retienen stock, la
	// liberación es incondicional) y re-descuenta. Drift documentado del
	// sistema de origen.
	_, err = uc.UpdateSale(ctx, companyA, saleID, updateRequest("PENDING", item("p1", 4)))
	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "liberación incondicional +4 y re-descuento -4")
}

func TestActualizarVenta_NoExiste(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.UpdateSale(context.Background(), companyA, "no-existe", updateRequest("PENDING", item("p1", 1)))

	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestActualizarVenta_OtraEmpresaForbidden(t *testing.T) {
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo)

	_, err := uc.UpdateSale(context.Background(), companyB, saleID, updateRequest("PENDING", item("p1", 1)))

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 6, stockRepo.qty("p1"), "el stock no cambia")
}

// ── DeleteSale ─────────────────────────────────────────────────────────────────

func TestBorrarVenta_LiberaStock(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 6

	err := uc.DeleteSale(context.Background(), companyA, saleID)

	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "borrar una venta activa devuelve su stock")
	s, _ := saleRepo.GetByID(saleID)
	assert.Nil(t, s)
}

func TestBorrarVenta_CanceladaNoLibera(t *testing.T) {
	uc, saleRepo, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 6
	ctx := context.Background()

	// Cancelar primero (libera) y luego borrar (no debe liberar otra vez).
	_, err := uc.UpdateSale(ctx, companyA, saleID, updateRequest("CANCELED", item("p1", 4)))
	require.NoError(t, err)
	require.Equal(t, 10, stockRepo.qty("p1"))

	err = uc.DeleteSale(ctx, companyA, saleID)

	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "la reserva ya se liberó al cancelar; borrar no duplica la liberación")
	s, _ := saleRepo.GetByID(saleID)
	assert.Nil(t, s)
}

// staleHeaderSaleRepo devuelve en GetByID una cabecera desactualizada que
// siempre dice PENDING, como la vería una lectura fuera de transacción que
// perdió la carrera contra una cancelación concurrente. GetByIDForUpdate
// (promovido del repo embebido) sigue devolviendo el estado real.
type staleHeaderSaleRepo struct {
	*memSaleRepo
}

func (f *staleHeaderSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, err := f.memSaleRepo.GetByID(id)
	if s != nil {
		s.PaymentStatus = entity.PaymentPending
	}
	return s, err
}

func TestBorrarVenta_CancelacionConcurrenteNoDuplicaLiberacion(t *testing.T) {
	// La decisión de liberar debe salir de la lectura bloqueada dentro de la
	// transacción, no de una cabecera leída antes. Si Delete consultara la
	// cabecera sin bloqueo vería PENDING, liberaría de nuevo y el stock
	// quedaría en 14 en vez de 10.
	saleRepo := newMemSaleRepo()
	stockRepo := newMemStockRepo()
	runner := &memTxRunner{saleRepo: saleRepo, stockRepo: stockRepo}
	uc := sales.NewSaleUseCase(runner, &staleHeaderSaleRepo{saleRepo}, stock.NewLedger())
	ctx := context.Background()

	stockRepo.seed("p1", 10, 0)
	out, err := uc.CreateSale(ctx, companyA, saleRequest("PENDING", item("p1", 4)))
	require.NoError(t, err)
	require.Equal(t, 6, stockRepo.qty("p1"))

	_, err = uc.UpdateSale(ctx, companyA, out.ID, updateRequest("CANCELED", item("p1", 4)))
	require.NoError(t, err)
	require.Equal(t, 10, stockRepo.qty("p1"))

	err = uc.DeleteSale(ctx, companyA, out.ID)

	require.NoError(t, err)
	assert.Equal(t, 10, stockRepo.qty("p1"), "la cabecera obsoleta no debe provocar una segunda liberación")
}

func TestBorrarVenta_NoExiste(t *testing.T) {
	uc, _, _ := newFixture()

	err := uc.DeleteSale(context.Background(), companyA, "no-existe")

	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestBorrarVenta_OtraEmpresaForbidden(t *testing.T) {
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo)

	err := uc.DeleteSale(context.Background(), companyB, saleID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Get / List ─────────────────────────────────────────────────────────────────

func TestObtenerVenta_ConLineas(t *testing.T) {
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo)

	out, err := uc.GetSale(context.Background(), companyA, saleID)

	require.NoError(t, err)
	require.Len(t, out.SoldItems, 1)
	assert.Equal(t, "p1", out.SoldItems[0].ProductID)
	assert.Equal(t, 4, out.SoldItems[0].Qty)
}

func TestObtenerVenta_OtraEmpresaForbidden(t *testing.T) {
	uc, _, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo)

	_, err := uc.GetSale(context.Background(), companyB, saleID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Concurrencia ───────────────────────────────────────────────────────────────

func TestActualizarVenta_ConcurrenciaNoDuplicaLiberacion(t *testing.T) {
	// Dos updates concurrentes sobre la misma venta. La fila de la venta se
	// bloquea dentro de la transacción, así que el segundo update ve las
	// líneas que dejó el primero y nunca libera dos veces las originales.
	uc, saleRepo, stockRepo := newFixture()
	saleID := crearVentaBase(t, uc, stockRepo) // p1: 10-4 = 6

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.UpdateSale(context.Background(), companyA, saleID, updateRequest("PENDING", item("p1", 2)))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Primer update: +4 -2; segundo: +2 -2. Una doble liberación de las
	// líneas originales dejaría 10.
	assert.Equal(t, 8, stockRepo.qty("p1"))
	items, err := saleRepo.GetItemsBySaleID(saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}

func TestCrearVenta_ConcurrenciaUltimaUnidad(t *testing.T) {
	// Dos ventas compiten por las últimas 5 unidades: exactamente una debe
	// ganar. El runner serializa las transacciones como lo haría el lock de
	// fila en PostgreSQL.
	uc, _, stockRepo := newFixture()
	stockRepo.seed("p1", 5, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateSale(context.Background(), companyA, saleRequest("PENDING", item("p1", 5)))
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, exitos, "exactamente una de las dos ventas debe reservar")
	assert.Equal(t, 0, stockRepo.qty("p1"))
}
