package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/infrastructure/memory"
)

func newProductUC(store *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store.Products(), store.Activity())
}

func seedProduct(t *testing.T, store *memory.Store, p *entity.Product) {
	t.Helper()
	require.NoError(t, store.Products().Create(p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AltaConValoresPorDefecto(t *testing.T) {
	store := memory.New()
	uc := newProductUC(store)

	out, err := uc.Create(dto.CreateProductRequest{
		Name: "  Harina Pan  ", Quantity: 24, MinStock: 5,
		Price: decimal.NewFromFloat(1.50),
	})
	require.NoError(t, err)

	assert.Equal(t, "Harina Pan", out.Name, "el nombre se guarda sin espacios extremos")
	assert.Equal(t, entity.DefaultCategory, out.Category, "categoría vacía cae al valor por defecto")
	assert.False(t, out.LowStock, "24 > 5")

	// La cantidad inicial deja rastro IN.
	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActivityIN, entries[0].Type)
	assert.Equal(t, 24, entries[0].Amount)
}

func TestCreate_RechazaValoresInvalidos(t *testing.T) {
	uc := newProductUC(memory.New())

	_, err := uc.Create(dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.Create(dto.CreateProductRequest{Name: "Arroz", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.Create(dto.CreateProductRequest{Name: "Arroz", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — edición parcial con rastro ADJUSTMENT
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CambioDeCantidadDejaAjusteConDelta(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 20, MinStock: 10})
	uc := newProductUC(store)

	newQty := 12
	out, err := uc.Update("p1", dto.UpdateProductRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 12, out.Quantity)

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActivityADJUSTMENT, entries[0].Type)
	assert.Equal(t, -8, entries[0].Amount, "el ajuste registra el delta, no el valor absoluto")
}

func TestUpdate_SinCambioDeCantidadNoDejaAjuste(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 20})
	uc := newProductUC(store)

	price := decimal.NewFromFloat(2.10)
	_, err := uc.Update("p1", dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries, "editar precio no es un movimiento de stock")
}

func TestUpdate_ProductoInexistenteRetornaNil(t *testing.T) {
	uc := newProductUC(memory.New())

	out, err := uc.Update("no-existe", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockOut — la existencia nunca baja de cero
// ──────────────────────────────────────────────────────────────────────────────

func TestStockOut_DescuentaYDejaEntradaOUT(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 20, MinStock: 10})
	uc := newProductUC(store)

	out, err := uc.StockOut("p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, out.Quantity)

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActivityOUT, entries[0].Type)
	assert.Equal(t, 5, entries[0].Amount)
}

func TestStockOut_SalidaMayorAlStockTruncaEnCero(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 3})
	uc := newProductUC(store)

	out, err := uc.StockOut("p1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity, "la existencia nunca es negativa")

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Amount, "se registra el delta efectivo, no el pedido")
}

func TestStockOut_StockYaEnCeroEsNoOp(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 0})
	uc := newProductUC(store)

	out, err := uc.StockOut("p1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries, "delta cero no deja rastro")
}

func TestStockOut_CantidadNoPositivaEsError(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "Harina Pan", Quantity: 5})
	uc := newProductUC(store)

	_, err := uc.StockOut("p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockOut("p1", -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockOut_ProductoInexistente(t *testing.T) {
	uc := newProductUC(memory.New())

	_, err := uc.StockOut("no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListLowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestListLowStock_UmbralInclusivo(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, &entity.Product{ID: "p1", Name: "En el umbral", Quantity: 10, MinStock: 10})
	seedProduct(t, store, &entity.Product{ID: "p2", Name: "Sobrado", Quantity: 50, MinStock: 10})
	seedProduct(t, store, &entity.Product{ID: "p3", Name: "Agotado", Quantity: 0, MinStock: 10})
	uc := newProductUC(store)

	out, err := uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, p := range out {
		assert.True(t, p.LowStock)
	}
}
