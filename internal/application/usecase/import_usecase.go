package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/domain/catalog"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// csvHeader columnas del formato de intercambio. Campos más allá del quinto
// se ignoran al importar.
var csvHeader = []string{"name", "quantity", "price", "minStock", "category"}

// ImportUseCase importación y exportación masiva del catálogo en CSV.
//
// El CSV se asume escrito con nombres ya normalizados (típicamente un export
// previo), por eso el match es por igualdad exacta insensible a mayúsculas y
// no por substring como en la ingesta de facturas.
type ImportUseCase struct {
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(productRepo repository.ProductRepository, activityRepo repository.ActivityRepository) *ImportUseCase {
	return &ImportUseCase{productRepo: productRepo, activityRepo: activityRepo}
}

// ImportCSV procesa filas `name,quantity,price,minStock,category`. La primera
// fila (encabezado) y las líneas vacías se saltan. Números ilegibles caen a
// valores seguros (cantidad 0, precio 0, minStock 10) en vez de fallar.
//
// Contra el catálogo: cantidad aditiva; el precio solo reemplaza al existente
// cuando el precio importado es estrictamente positivo (una columna en blanco
// no borra un precio conocido); sin match se crea el producto con los valores
// tal cual. Deja una única entrada IMPORT que resume el lote.
func (uc *ImportUseCase) ImportCSV(r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	snapshot, err := uc.productRepo.List()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	result := &dto.ImportResult{}
	totalUnits := 0
	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV fila %d: %w", row+1, err)
		}
		row++
		if row == 1 {
			continue // encabezado
		}
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			result.Skipped++
			continue
		}
		quantity := parseIntField(rec, 1, 0)
		if quantity < 0 {
			quantity = 0
		}
		price := parseDecimalField(rec, 2)
		minStock := parseIntField(rec, 3, entity.DefaultMinStock)
		if minStock < 0 {
			minStock = entity.DefaultMinStock
		}
		category := entity.DefaultCategory
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			category = strings.TrimSpace(rec[4])
		}

		now := time.Now()
		if existing := catalog.ExactMatch(name, snapshot); existing != nil {
			existing.Quantity += quantity
			if price.IsPositive() {
				existing.Price = price
			}
			existing.LastUpdated = now
			if err := uc.productRepo.Update(existing); err != nil {
				return nil, fmt.Errorf("actualizar %q: %w", existing.Name, err)
			}
			result.Updated++
			totalUnits += quantity
			continue
		}

		product := &entity.Product{
			ID:          uuid.New().String(),
			Name:        name,
			Quantity:    quantity,
			MinStock:    minStock,
			Price:       price,
			Category:    category,
			LastUpdated: now,
			CreatedAt:   now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			return nil, fmt.Errorf("crear %q: %w", name, err)
		}
		snapshot = append(snapshot, product)
		result.Added++
		totalUnits += quantity
	}

	if result.Added > 0 || result.Updated > 0 {
		appendActivity(uc.activityRepo, entity.ActivityIMPORT, totalUnits,
			fmt.Sprintf("Importación CSV: %d nuevos, %d actualizados", result.Added, result.Updated))
	}
	return result, nil
}

// ExportCSV vuelca el catálogo completo en el mismo formato que acepta la
// importación.
func (uc *ImportUseCase) ExportCSV(w io.Writer) error {
	products, err := uc.productRepo.List()
	if err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		rec := []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			p.Price.String(),
			strconv.Itoa(p.MinStock),
			p.Category,
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// parseIntField campo entero con valor por defecto ante ausencia o basura.
func parseIntField(rec []string, idx, def int) int {
	if idx >= len(rec) {
		return def
	}
	s := strings.TrimSpace(rec[idx])
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseDecimalField campo decimal; ausencia o basura valen cero.
func parseDecimalField(rec []string, idx int) decimal.Decimal {
	if idx >= len(rec) {
		return decimal.Zero
	}
	s := strings.TrimSpace(rec[idx])
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
