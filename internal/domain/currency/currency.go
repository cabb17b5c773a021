// Package currency normaliza montos entre las dos monedas que maneja el
// abasto: USD (canónica, en la que se persisten todos los precios) y Bs.
package currency

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/domain"
)

// Códigos de moneda soportados.
const (
	USD = "USD" // moneda canónica de almacenamiento
	Bs  = "Bs"  // bolívares; requiere tasa Bs/USD para convertir
)

// Canonical es la moneda en la que se guardan todos los precios del catálogo.
const Canonical = USD

// IsSupported valida el código de moneda. El código vacío se acepta y se trata
// como USD (facturas sin moneda detectada).
func IsSupported(code string) bool {
	return code == "" || code == USD || code == Bs
}

// ToCanonical convierte un monto en la moneda de la factura a USD.
// Si source ya es la canónica (o viene vacío) devuelve el monto sin tocar.
// rate es la tasa Bs por USD y debe ser > 0; nunca se divide entre una tasa
// inválida: en ese caso retorna domain.ErrInvalidRate.
func ToCanonical(amount decimal.Decimal, source string, rate decimal.Decimal) (decimal.Decimal, error) {
	if source == "" || source == Canonical {
		return amount, nil
	}
	if source != Bs {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !rate.IsPositive() {
		return decimal.Zero, domain.ErrInvalidRate
	}
	return amount.Div(rate), nil
}

// FromCanonical convierte un monto almacenado en USD a la moneda pedida,
// para visualización. Inversa exacta de ToCanonical.
func FromCanonical(amount decimal.Decimal, target string, rate decimal.Decimal) (decimal.Decimal, error) {
	if target == "" || target == Canonical {
		return amount, nil
	}
	if target != Bs {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !rate.IsPositive() {
		return decimal.Zero, domain.ErrInvalidRate
	}
	return amount.Mul(rate), nil
}
