package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource define el puerto de salida hacia la fuente de tasa de cambio
// oficial Bs/USD. Una tasa cero o un error significan "no hay conversión
// posible": el caller nunca divide entre lo que venga de aquí sin validarlo.
type RateSource interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}
