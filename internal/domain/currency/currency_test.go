package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/currency"
)

// ──────────────────────────────────────────────────────────────────────────────
// ToCanonical — conversión a USD (moneda de almacenamiento)
// ──────────────────────────────────────────────────────────────────────────────

func TestToCanonical_USDPasaSinTocar(t *testing.T) {
	amount := decimal.NewFromFloat(12.50)

	out, err := currency.ToCanonical(amount, currency.USD, decimal.Zero)
	require.NoError(t, err, "USD no necesita tasa")
	assert.True(t, amount.Equal(out), "un monto ya en USD debe pasar idéntico")
}

func TestToCanonical_MonedaVaciaSeTrataComoUSD(t *testing.T) {
	amount := decimal.NewFromFloat(3.99)

	out, err := currency.ToCanonical(amount, "", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, amount.Equal(out), "moneda vacía equivale a USD")
}

func TestToCanonical_BsDivideEntreLaTasa(t *testing.T) {
	// 3650 Bs a tasa 36.50 Bs/USD = 100 USD exactos.
	amount := decimal.NewFromInt(3650)
	rate := decimal.NewFromFloat(36.50)

	out, err := currency.ToCanonical(amount, currency.Bs, rate)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(out),
		"3650 Bs / 36.50 Bs/USD debe ser 100 USD")
}

func TestToCanonical_TasaCeroRetornaErrInvalidRate(t *testing.T) {
	_, err := currency.ToCanonical(decimal.NewFromInt(100), currency.Bs, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidRate, "nunca se divide entre cero")
}

func TestToCanonical_TasaNegativaRetornaErrInvalidRate(t *testing.T) {
	_, err := currency.ToCanonical(decimal.NewFromInt(100), currency.Bs, decimal.NewFromInt(-36))
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestToCanonical_MonedaDesconocidaRetornaError(t *testing.T) {
	_, err := currency.ToCanonical(decimal.NewFromInt(100), "EUR", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// FromCanonical — visualización en Bs
// ──────────────────────────────────────────────────────────────────────────────

func TestFromCanonical_BsMultiplicaPorLaTasa(t *testing.T) {
	out, err := currency.FromCanonical(decimal.NewFromInt(100), currency.Bs, decimal.NewFromFloat(36.50))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3650).Equal(out))
}

// TestRoundTrip_BsUSDBs verifica que la ida y vuelta con la misma tasa devuelve
// el monto original (Div y Mul son inversas exactas en decimal).
func TestRoundTrip_BsUSDBs(t *testing.T) {
	rate := decimal.NewFromFloat(36.5)
	original := decimal.NewFromFloat(292.00)

	usd, err := currency.ToCanonical(original, currency.Bs, rate)
	require.NoError(t, err)
	back, err := currency.FromCanonical(usd, currency.Bs, rate)
	require.NoError(t, err)

	assert.True(t, original.Equal(back),
		"Bs → USD → Bs con la misma tasa debe devolver el monto original")
}

// ──────────────────────────────────────────────────────────────────────────────
// IsSupported
// ──────────────────────────────────────────────────────────────────────────────

func TestIsSupported(t *testing.T) {
	assert.True(t, currency.IsSupported(currency.USD))
	assert.True(t, currency.IsSupported(currency.Bs))
	assert.True(t, currency.IsSupported(""), "vacío se acepta como USD")
	assert.False(t, currency.IsSupported("EUR"))
	assert.False(t, currency.IsSupported("bs"), "el código es sensible a mayúsculas")
}
