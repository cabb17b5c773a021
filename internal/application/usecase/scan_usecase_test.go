package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/infrastructure/memory"
)

// fakeExtractor devuelve un payload fijo sin llamar a ningún servicio.
type fakeExtractor struct {
	data *entity.InvoiceData
	err  error
}

func (f fakeExtractor) ExtractInvoice(_ context.Context, _, _ string) (*entity.InvoiceData, error) {
	return f.data, f.err
}

// fakeRateSource tasa fija o error.
type fakeRateSource struct {
	rate decimal.Decimal
	err  error
}

func (f fakeRateSource) CurrentRate(_ context.Context) (decimal.Decimal, error) {
	return f.rate, f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Scan
// ──────────────────────────────────────────────────────────────────────────────

func TestScan_ResuelveAliasYAnotaDesglose(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Harina Pan", Category: "Alimentos",
	}))

	extractor := fakeExtractor{data: &entity.InvoiceData{
		Currency: "Bs",
		Items: []entity.InvoiceItem{
			{ProductName: "HARINA PAN", OriginalQuantity: 2, DetectedPackSize: 24, Quantity: 48, Price: decimal.NewFromInt(55)},
			{ProductName: "Malta Regional", OriginalQuantity: 6, DetectedPackSize: 1, Quantity: 6, Price: decimal.NewFromInt(30)},
		},
		Supplier: &entity.InvoiceSupplier{Name: "Distribuidora Polar C.A.", RIF: "J-12345678-9"},
	}}
	uc := usecase.NewScanUseCase(extractor, ingest.NewAliasResolver(store.Products()),
		fakeRateSource{rate: decimal.NewFromFloat(36.50)})

	out, err := uc.Scan(context.Background(), dto.ScanRequest{ImageBase64: "Zm90bw=="})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Harina Pan", out.Items[0].ProductName, "el alias apunta al nombre canónico")
	assert.True(t, out.Items[0].Matched)
	assert.Equal(t, "2 x 24", out.Items[0].Breakdown)
	assert.Equal(t, 48, out.Items[0].Quantity)

	assert.Equal(t, "Malta Regional", out.Items[1].ProductName)
	assert.False(t, out.Items[1].Matched, "producto que no está en el catálogo")
	assert.Equal(t, "", out.Items[1].Breakdown, "sin notación de empaque no hay desglose")

	assert.Equal(t, "Bs", out.Currency)
	require.NotNil(t, out.Supplier)
	assert.Equal(t, "J-12345678-9", out.Supplier.RIF)
	require.NotNil(t, out.SuggestedRate)
	assert.True(t, decimal.NewFromFloat(36.50).Equal(*out.SuggestedRate))
}

func TestScan_MonedaDesconocidaCaeAUSD(t *testing.T) {
	store := memory.New()
	extractor := fakeExtractor{data: &entity.InvoiceData{
		Currency: "EUR",
		Items:    []entity.InvoiceItem{{ProductName: "Harina Pan", Quantity: 1, Price: decimal.NewFromInt(1)}},
	}}
	uc := usecase.NewScanUseCase(extractor, ingest.NewAliasResolver(store.Products()),
		fakeRateSource{rate: decimal.NewFromInt(36)})

	out, err := uc.Scan(context.Background(), dto.ScanRequest{ImageBase64: "Zm90bw=="})
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Currency, "moneda que el motor no soporta se asume USD")
}

func TestScan_TasaCaidaNoAbortaElScan(t *testing.T) {
	store := memory.New()
	extractor := fakeExtractor{data: &entity.InvoiceData{
		Items: []entity.InvoiceItem{{ProductName: "Harina Pan", Quantity: 1, Price: decimal.NewFromInt(1)}},
	}}
	uc := usecase.NewScanUseCase(extractor, ingest.NewAliasResolver(store.Products()),
		fakeRateSource{err: errors.New("upstream caído")})

	out, err := uc.Scan(context.Background(), dto.ScanRequest{ImageBase64: "Zm90bw=="})
	require.NoError(t, err, "la tasa sugerida es mejor esfuerzo")
	assert.Nil(t, out.SuggestedRate)
}

func TestScan_SinImagenEsError(t *testing.T) {
	uc := usecase.NewScanUseCase(fakeExtractor{}, ingest.NewAliasResolver(memory.New().Products()),
		fakeRateSource{})

	_, err := uc.Scan(context.Background(), dto.ScanRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScan_ErrorDelExtractorSube(t *testing.T) {
	uc := usecase.NewScanUseCase(fakeExtractor{err: errors.New("gemini caído")},
		ingest.NewAliasResolver(memory.New().Products()), fakeRateSource{})

	_, err := uc.Scan(context.Background(), dto.ScanRequest{ImageBase64: "Zm90bw=="})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gemini caído")
}
