package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// ScanHandler maneja el flujo de escaneo de facturas: extracción por visión y
// confirmación (conciliación contra el catálogo).
type ScanHandler struct {
	scanUC      *usecase.ScanUseCase
	reconcileUC *ingest.ReconcileUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(scanUC *usecase.ScanUseCase, reconcileUC *ingest.ReconcileUseCase) *ScanHandler {
	return &ScanHandler{scanUC: scanUC, reconcileUC: reconcileUC}
}

// Scan godoc
// @Summary      Escanear factura de compra
// @Description  Extrae las líneas de la imagen con IA y las devuelve resueltas contra el catálogo para revisión. No muta el inventario.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Imagen en base64 + mime type"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.scanUC.Scan(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image_base64 es requerido"})
		}
		// La extracción depende de un servicio externo: error aguas arriba.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "EXTRACTION_FAILED", Message: err.Error()})
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar factura revisada
// @Description  Aplica los ítems revisados contra el catálogo: cantidades aditivas, precio de la última factura, alta de productos nuevos y registro del proveedor.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmScanRequest  true  "Ítems revisados + moneda y tasa"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/confirm [post]
func (h *ScanHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}

	result, err := h.reconcileUC.Reconcile(toReconcileInput(in))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RATE", Message: "rate debe ser positiva cuando la moneda es Bs"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "moneda no soportada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toReconcileResponse(result))
}

// toReconcileInput mapea el request HTTP al input del motor de conciliación.
func toReconcileInput(in dto.ConfirmScanRequest) ingest.ReconcileInput {
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.InvoiceItem{
			ProductName:      it.ProductName,
			OriginalQuantity: it.OriginalQuantity,
			DetectedPackSize: it.DetectedPackSize,
			Quantity:         it.Quantity,
			Price:            it.Price,
			Category:         it.Category,
			Confidence:       it.Confidence,
		})
	}
	input := ingest.ReconcileInput{
		Items:    items,
		Currency: in.Currency,
		Rate:     in.Rate,
	}
	if in.Supplier != nil {
		input.Supplier = &entity.InvoiceSupplier{Name: in.Supplier.Name, RIF: in.Supplier.RIF}
	}
	return input
}

func toReconcileResponse(r *ingest.ReconcileResult) dto.ReconcileResponse {
	out := dto.ReconcileResponse{
		Created:  r.Created,
		Updated:  r.Updated,
		Products: make([]dto.ProductResponse, 0, len(r.Products)),
	}
	for _, p := range r.Products {
		out.Products = append(out.Products, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinStock:    p.MinStock,
			Price:       p.Price,
			Category:    p.Category,
			SupplierID:  p.SupplierID,
			LowStock:    p.IsLowStock(),
			LastUpdated: p.LastUpdated,
			CreatedAt:   p.CreatedAt,
		})
	}
	if r.Supplier != nil {
		out.Supplier = &dto.SupplierResponse{
			ID:        r.Supplier.ID,
			Name:      r.Supplier.Name,
			RIF:       r.Supplier.RIF,
			FirstSeen: r.Supplier.FirstSeen,
		}
	}
	return out
}
