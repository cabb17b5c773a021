package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// StockReportGenerator puerto hacia el generador PDF del reporte de inventario.
// rate puede venir nil cuando la fuente de tasa no estaba disponible; en ese
// caso el reporte muestra solo precios en USD.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, products []*entity.Product, rate *decimal.Decimal) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del estado del inventario.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	rates       ports.RateSource
	generator   StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, rates ports.RateSource, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, rates: rates, generator: generator}
}

// GenerateStockPDF produce el PDF del catálogo completo. La tasa Bs/USD es
// mejor esfuerzo: sin tasa el reporte sale igual, solo en USD.
func (uc *ReportUseCase) GenerateStockPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	var rate *decimal.Decimal
	rateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if r, err := uc.rates.CurrentRate(rateCtx); err == nil && r.IsPositive() {
		rate = &r
	} else if err != nil {
		log.Warn().Err(err).Msg("reporte: tasa de cambio no disponible")
	}

	return uc.generator.GenerateStockReport(ctx, products, rate)
}
