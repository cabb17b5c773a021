package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceItem es una línea de factura extraída por visión. Es efímera: vive lo
// que dura la conciliación y no se persiste como entidad propia.
//
// Quantity es el total de unidades físicas: OriginalQuantity × DetectedPackSize.
// OriginalQuantity y DetectedPackSize existen para explicar ese total en la
// pantalla de revisión; si el usuario edita Quantity a mano, la igualdad se
// rompe y eso es aceptable (los campos derivados no se recalculan).
type InvoiceItem struct {
	ProductName      string
	Quantity         int
	OriginalQuantity int
	DetectedPackSize int             // 1 cuando la factura no trae notación de empaque ("x24")
	Price            decimal.Decimal // precio unitario en la moneda de la factura
	Category         string
	Confidence       *float64
}

// PackBreakdown devuelve la explicación del desglose de empaque ("2 x 24"),
// o cadena vacía cuando no hubo notación de empaque detectada.
func (it InvoiceItem) PackBreakdown() string {
	if it.DetectedPackSize <= 1 || it.OriginalQuantity <= 0 {
		return ""
	}
	return fmt.Sprintf("%d x %d", it.OriginalQuantity, it.DetectedPackSize)
}

// InvoiceSupplier proveedor tal como aparece impreso en la factura.
type InvoiceSupplier struct {
	Name string
	RIF  string
}

// InvoiceData es el payload estructurado que devuelve el servicio de
// extracción por visión. Pertenece a la llamada de conciliación y se descarta
// al terminar, con o sin éxito.
type InvoiceData struct {
	Items    []InvoiceItem
	Supplier *InvoiceSupplier
	Currency string // "USD" | "Bs"; vacío se trata como USD
}
