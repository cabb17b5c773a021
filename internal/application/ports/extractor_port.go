package ports

import (
	"context"

	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// InvoiceExtractor define el puerto de salida hacia el servicio de extracción
// por visión. Cualquier adaptador (Gemini, Anthropic, mock) debe implementar
// esta interfaz. El motor de conciliación solo consume la forma del payload
// (entity.InvoiceData), nunca la mecánica de la extracción.
type InvoiceExtractor interface {
	// ExtractInvoice analiza la imagen de una factura de compra y devuelve sus
	// líneas estructuradas: nombre, cantidades (con multiplicador de empaque),
	// precio unitario, moneda detectada y proveedor si está impreso.
	// El contexto debe llevar timeout para no bloquear en llamadas externas.
	ExtractInvoice(ctx context.Context, imageBase64, mimeType string) (*entity.InvoiceData, error)
}
