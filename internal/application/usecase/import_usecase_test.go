package usecase_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/infrastructure/memory"
)

func newImportUC(store *memory.Store) *usecase.ImportUseCase {
	return usecase.NewImportUseCase(store.Products(), store.Activity())
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestImportCSV_CreaProductosNuevos(t *testing.T) {
	store := memory.New()
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\n" +
		"Arroz Primor,48,2.10,12,Alimentos\n" +
		"Jabón Las Llaves,30,1.25,8,Limpieza\n"

	result, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Skipped)

	products, err := store.Products().List()
	require.NoError(t, err)
	require.Len(t, products, 2)

	arroz := products[0] // orden alfabético del List
	assert.Equal(t, "Arroz Primor", arroz.Name)
	assert.Equal(t, 48, arroz.Quantity)
	assert.Equal(t, 12, arroz.MinStock)
	assert.True(t, decimal.NewFromFloat(2.10).Equal(arroz.Price))
	assert.Equal(t, "Alimentos", arroz.Category)
}

func TestImportCSV_ReimportarAcumulaCantidadYReemplazaPrecio(t *testing.T) {
	store := memory.New()
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\nArroz Primor,48,2.10,12,Alimentos\n"
	_, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)

	// Mismo archivo otra vez: match exacto → aditivo.
	result, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)

	products, err := store.Products().List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 96, products[0].Quantity, "48 + 48: la importación es aditiva")
}

func TestImportCSV_PrecioEnBlancoNoBorraElConocido(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Arroz Primor", Quantity: 10,
		Price: decimal.NewFromFloat(2.10),
	}))
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\nArroz Primor,5,,,\n"
	result, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	products, err := store.Products().List()
	require.NoError(t, err)
	assert.Equal(t, 15, products[0].Quantity)
	assert.True(t, decimal.NewFromFloat(2.10).Equal(products[0].Price),
		"un precio importado en cero no pisa el precio vigente")
}

func TestImportCSV_NumerosIlegiblesCaenAValoresSeguros(t *testing.T) {
	store := memory.New()
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\nHarina Pan,muchas,gratis,-3,\n"
	result, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err, "basura numérica no aborta la importación")
	assert.Equal(t, 1, result.Added)

	products, err := store.Products().List()
	require.NoError(t, err)
	p := products[0]
	assert.Equal(t, 0, p.Quantity, "cantidad ilegible vale 0")
	assert.True(t, p.Price.IsZero(), "precio ilegible vale 0")
	assert.Equal(t, entity.DefaultMinStock, p.MinStock, "minStock negativo cae al valor por defecto")
	assert.Equal(t, entity.DefaultCategory, p.Category)
}

func TestImportCSV_FilasSinNombreSeSaltan(t *testing.T) {
	store := memory.New()
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\n" +
		",10,1.00,5,Alimentos\n" +
		"Harina Pan,24,1.50,10,Alimentos\n"

	result, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportCSV_DejaUnaSolaEntradaIMPORT(t *testing.T) {
	store := memory.New()
	uc := newImportUC(store)

	csv := "name,quantity,price,minStock,category\n" +
		"Harina Pan,24,1.50,10,Alimentos\n" +
		"Arroz Primor,48,2.10,12,Alimentos\n"

	_, err := uc.ImportCSV(strings.NewReader(csv))
	require.NoError(t, err)

	entries, err := store.Activity().List(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1, "el lote completo se resume en una entrada")
	assert.Equal(t, entity.ActivityIMPORT, entries[0].Type)
	assert.Equal(t, 72, entries[0].Amount, "24 + 48 unidades totales")
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportCSV — ida y vuelta con la importación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_EsReimportable(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Harina Pan", Quantity: 24, MinStock: 10,
		Price: decimal.NewFromFloat(1.50), Category: "Alimentos",
	}))
	uc := newImportUC(store)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "name,quantity,price,minStock,category\n"))
	assert.Contains(t, buf.String(), "Harina Pan,24,1.5,10,Alimentos")

	// El export se puede reimportar en un store vacío sin pérdida.
	fresh := memory.New()
	result, err := newImportUC(fresh).ImportCSV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	products, err := fresh.Products().List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 24, products[0].Quantity)
	assert.True(t, decimal.NewFromFloat(1.50).Equal(products[0].Price))
}
