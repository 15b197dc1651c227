package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
)

// fakeStockRepo repositorio de stock en memoria, indexado por product_id.
// Un producto sin registro devuelve el registro en cero, igual que el
// repositorio real sobre PostgreSQL.
type fakeStockRepo struct {
	records map[string]*entity.StockRecord
}

func newFakeStockRepo(records ...*entity.StockRecord) *fakeStockRepo {
	m := make(map[string]*entity.StockRecord)
	for _, r := range records {
		m[r.ProductID] = r
	}
	return &fakeStockRepo{records: m}
}

func (f *fakeStockRepo) GetByProductID(productID string) (*entity.StockRecord, error) {
	if r, ok := f.records[productID]; ok {
		cp := *r
		return &cp, nil
	}
	return &entity.StockRecord{ProductID: productID}, nil
}

func (f *fakeStockRepo) GetByProductIDForUpdate(productID string) (*entity.StockRecord, error) {
	return f.GetByProductID(productID)
}

func (f *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	f.records[record.ProductID] = &cp
	return nil
}

func (f *fakeStockRepo) GetByID(id string) (*entity.StockRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStockRepo) ListByCompany(companyID, orderBy string) ([]*entity.StockRecord, error) {
	return nil, nil
}

func (f *fakeStockRepo) Create(record *entity.StockRecord) error {
	return f.Upsert(record)
}

func (f *fakeStockRepo) UpdateLimits(record *entity.StockRecord) error {
	return f.Upsert(record)
}

func (f *fakeStockRepo) Delete(id string) error {
	for pid, r := range f.records {
		if r.ID == id {
			delete(f.records, pid)
		}
	}
	return nil
}

func (f *fakeStockRepo) qty(productID string) int {
	if r, ok := f.records[productID]; ok {
		return r.Qty
	}
	return 0
}

// ── TryReserve ─────────────────────────────────────────────────────────────────

func TestTryReserve_DescuentaConDisponibilidad(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 10, MinStock: 2})
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "p1", 5)

	require.NoError(t, err)
	assert.Equal(t, 5, repo.qty("p1"))
}

func TestTryReserve_FallaPorCantidadInsuficiente(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 3})
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "p1", 5)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, repo.qty("p1"), "una reserva fallida no debe cambiar el stock")
}

func TestTryReserve_FallaSiRompeStockMinimo(t *testing.T) {
	// Hay 10 unidades pero el mínimo es 8: solo se pueden vender 2.
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 10, MinStock: 8})
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "p1", 3)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, repo.qty("p1"))
}

func TestTryReserve_ExactoHastaElMinimo(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 10, MinStock: 8})
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "p1", 2)

	require.NoError(t, err, "vender hasta dejar el stock exactamente en el mínimo es válido")
	assert.Equal(t, 8, repo.qty("p1"))
}

func TestTryReserve_ProductoSinRegistroFalla(t *testing.T) {
	repo := newFakeStockRepo()
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "fantasma", 1)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"un producto sin registro de stock equivale a stock cero")
}

func TestTryReserve_ErrorIdentificaElProducto(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 0})
	ledger := stock.NewLedger()

	err := ledger.TryReserve(repo, "p1", 1)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "p1", insErr.ProductID)
}

func TestTryReserve_CantidadInvalida(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 10})
	ledger := stock.NewLedger()

	assert.ErrorIs(t, ledger.TryReserve(repo, "p1", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, ledger.TryReserve(repo, "p1", -4), domain.ErrInvalidInput)
}

// ── Release / Deduct ───────────────────────────────────────────────────────────

func TestRelease_SumaSinTope(t *testing.T) {
	// Capacity es informativo: liberar puede dejar Qty por encima de Capacity.
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 9, Capacity: 10})
	ledger := stock.NewLedger()

	require.NoError(t, ledger.Release(repo, "p1", 5))
	assert.Equal(t, 14, repo.qty("p1"))
}

func TestRelease_ProductoSinRegistroCreaUnoEnCero(t *testing.T) {
	// Liberar sobre un producto sin registro no pierde las unidades: el
	// camino de registro-en-cero crea uno nuevo con los límites en cero.
	repo := newFakeStockRepo()
	ledger := stock.NewLedger()

	require.NoError(t, ledger.Release(repo, "p-borrado", 3))

	rec, err := repo.GetByProductID("p-borrado")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Qty)
	assert.Equal(t, 0, rec.MinStock)
	assert.Equal(t, 0, rec.Capacity)
}

func TestDeduct_NoChequeaDisponibilidad(t *testing.T) {
	// Deduct es el camino de Update: re-aplica sin re-chequear, puede dejar
	// el stock por debajo del mínimo e incluso negativo.
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 2, MinStock: 1})
	ledger := stock.NewLedger()

	require.NoError(t, ledger.Deduct(repo, "p1", 5))
	assert.Equal(t, -3, repo.qty("p1"))
}

func TestReleaseLuegoReserve_Reconcilia(t *testing.T) {
	repo := newFakeStockRepo(&entity.StockRecord{ID: "s1", ProductID: "p1", Qty: 10})
	ledger := stock.NewLedger()

	require.NoError(t, ledger.TryReserve(repo, "p1", 7))
	require.NoError(t, ledger.Release(repo, "p1", 7))
	assert.Equal(t, 10, repo.qty("p1"), "reservar y liberar la misma cantidad debe dejar el stock como estaba")
}
