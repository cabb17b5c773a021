// Package ingest implementa el motor de conciliación de facturas: convierte
// las líneas extraídas de una factura de compra en mutaciones deterministas
// del catálogo (alias, moneda, empaque, proveedor, stock).
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/catalog"
	"github.com/jhoicas/abasto-api/internal/domain/currency"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// ReconcileInput es una factura revisada por el usuario, lista para aplicar.
type ReconcileInput struct {
	Items    []entity.InvoiceItem
	Supplier *entity.InvoiceSupplier
	Currency string          // "USD" | "Bs"; vacío = USD
	Rate     decimal.Decimal // Bs/USD; obligatoria y > 0 cuando Currency es Bs
}

// ReconcileResult resume la conciliación y trae el catálogo refrescado.
type ReconcileResult struct {
	Created  int
	Updated  int
	Supplier *entity.Supplier
	Products []*entity.Product
}

// ReconcileUseCase es el orquestador del motor: normaliza precios a USD,
// resuelve el proveedor y fusiona cada línea contra el catálogo.
type ReconcileUseCase struct {
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
	registrar    *SupplierRegistrar
	matcher      catalog.Matcher
}

// NewReconcileUseCase construye el caso de uso. matcher nil usa la estrategia
// de substring por defecto.
func NewReconcileUseCase(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	registrar *SupplierRegistrar,
	matcher catalog.Matcher,
) *ReconcileUseCase {
	if matcher == nil {
		matcher = catalog.SubstringMatcher{}
	}
	return &ReconcileUseCase{
		productRepo:  productRepo,
		activityRepo: activityRepo,
		registrar:    registrar,
		matcher:      matcher,
	}
}

// Reconcile aplica la factura contra el catálogo, ítem por ítem y en orden de
// entrada:
//
//   - precio convertido a USD con la tasa dada (nunca se divide entre una
//     tasa inválida);
//   - match tolerante a substring contra un snapshot tomado una sola vez, de
//     modo que dos líneas con el mismo nombre en la misma factura acumulan en
//     vez de pisarse;
//   - cantidad siempre aditiva; el precio de la última factura siempre gana;
//   - sin match se crea el producto con MinStock por defecto;
//   - una entrada IN de actividad por ítem, con mejor esfuerzo.
//
// Un fallo de persistencia aborta el lote en el ítem que falló; los ítems
// anteriores quedan aplicados (sin rollback compensatorio). Quien reintente
// un lote parcial debe verificar qué ítems entraron: la fusión es aditiva y
// un reintento ciego duplicaría cantidades.
func (uc *ReconcileUseCase) Reconcile(input ReconcileInput) (*ReconcileResult, error) {
	if !currency.IsSupported(input.Currency) {
		return nil, domain.ErrInvalidInput
	}
	if input.Currency == currency.Bs && !input.Rate.IsPositive() {
		return nil, domain.ErrInvalidRate
	}

	result := &ReconcileResult{}

	if input.Supplier != nil && strings.TrimSpace(input.Supplier.Name) != "" {
		supplier, err := uc.registrar.Register(input.Supplier.Name, input.Supplier.RIF)
		if err != nil {
			return nil, fmt.Errorf("registrar proveedor: %w", err)
		}
		result.Supplier = supplier
	}

	snapshot, err := uc.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	for _, item := range input.Items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" || item.Quantity <= 0 {
			log.Warn().Str("name", item.ProductName).Int("qty", item.Quantity).
				Msg("conciliación: ítem descartado por datos vacíos")
			continue
		}

		priceUSD, err := currency.ToCanonical(item.Price, input.Currency, input.Rate)
		if err != nil {
			return nil, fmt.Errorf("convertir precio de %q: %w", name, err)
		}
		if priceUSD.IsNegative() {
			priceUSD = decimal.Zero
		}

		now := time.Now()
		if existing := uc.matcher.FindMatch(name, snapshot); existing != nil {
			existing.Quantity += item.Quantity
			existing.Price = priceUSD
			existing.LastUpdated = now
			if result.Supplier != nil {
				existing.SupplierID = result.Supplier.ID
			}
			if err := uc.productRepo.Update(existing); err != nil {
				return nil, fmt.Errorf("actualizar %q: %w", existing.Name, err)
			}
			result.Updated++
			uc.logActivity(entity.ActivityIN, item.Quantity,
				fmt.Sprintf("Factura: +%d %s", item.Quantity, existing.Name))
			continue
		}

		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = entity.DefaultCategory
		}
		product := &entity.Product{
			ID:          uuid.New().String(),
			Name:        name,
			Quantity:    item.Quantity,
			MinStock:    entity.DefaultMinStock,
			Price:       priceUSD,
			Category:    category,
			LastUpdated: now,
			CreatedAt:   now,
		}
		if result.Supplier != nil {
			product.SupplierID = result.Supplier.ID
		}
		if err := uc.productRepo.Create(product); err != nil {
			return nil, fmt.Errorf("crear %q: %w", name, err)
		}
		// Entra al snapshot: una segunda línea con el mismo nombre acumula.
		snapshot = append(snapshot, product)
		result.Created++
		uc.logActivity(entity.ActivityIN, item.Quantity,
			fmt.Sprintf("Factura: +%d %s (nuevo)", item.Quantity, name))
	}

	refreshed, err := uc.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("refrescar catálogo: %w", err)
	}
	result.Products = refreshed
	return result, nil
}

// logActivity anexa al registro de actividad con mejor esfuerzo: un fallo aquí
// nunca aborta la conciliación.
func (uc *ReconcileUseCase) logActivity(typ string, amount int, description string) {
	err := uc.activityRepo.Append(&entity.Activity{
		ID:          uuid.New().String(),
		Type:        typ,
		Description: description,
		Amount:      amount,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("type", typ).Msg("actividad: no se pudo anexar")
	}
}
