package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/currency"
)

// ScanUseCase orquesta el escaneo de una factura: extracción por visión,
// resolución de alias contra el catálogo y tasa sugerida para la pantalla de
// revisión. No toca el catálogo: eso lo hace la conciliación al confirmar.
type ScanUseCase struct {
	extractor ports.InvoiceExtractor
	resolver  *ingest.AliasResolver
	rates     ports.RateSource
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(extractor ports.InvoiceExtractor, resolver *ingest.AliasResolver, rates ports.RateSource) *ScanUseCase {
	return &ScanUseCase{extractor: extractor, resolver: resolver, rates: rates}
}

// Scan extrae la factura y devuelve los ítems ya pasados por alias, cada uno
// con su desglose de empaque ("2 x 24") cuando aplica. La tasa sugerida es
// mejor esfuerzo: si la fuente falla, el campo simplemente no viene.
// Timeout de 30 s: la extracción por visión puede demorar varios segundos.
func (uc *ScanUseCase) Scan(ctx context.Context, req dto.ScanRequest) (*dto.ScanResponse, error) {
	if req.ImageBase64 == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, err := uc.extractor.ExtractInvoice(ctx, req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, fmt.Errorf("extraer factura: %w", err)
	}
	if data.Currency == "" {
		data.Currency = currency.USD
	}
	if !currency.IsSupported(data.Currency) {
		log.Warn().Str("currency", data.Currency).Msg("scan: moneda desconocida, se asume USD")
		data.Currency = currency.USD
	}

	items, matched := uc.resolver.ResolveWithMatches(data.Items)

	resp := &dto.ScanResponse{
		Currency: data.Currency,
		Items:    make([]dto.ScanItemDTO, 0, len(items)),
	}
	for i, it := range items {
		resp.Items = append(resp.Items, dto.ScanItemDTO{
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			OriginalQuantity: it.OriginalQuantity,
			DetectedPackSize: it.DetectedPackSize,
			Breakdown:        it.PackBreakdown(),
			Price:            it.Price,
			Category:         it.Category,
			Confidence:       it.Confidence,
			Matched:          matched[i],
		})
	}
	if data.Supplier != nil {
		resp.Supplier = &dto.ScanSupplierDTO{Name: data.Supplier.Name, RIF: data.Supplier.RIF}
	}

	if rate, err := uc.rates.CurrentRate(ctx); err == nil && rate.IsPositive() {
		resp.SuggestedRate = &rate
	} else if err != nil {
		log.Warn().Err(err).Msg("scan: tasa de cambio no disponible")
	}
	return resp, nil
}
