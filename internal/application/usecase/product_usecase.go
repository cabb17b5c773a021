package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo más la salida manual de stock.
// Las entradas por factura no pasan por aquí: las aplica el motor de
// conciliación (ingest).
type ProductUseCase struct {
	repo         repository.ProductRepository
	activityRepo repository.ActivityRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, activityRepo repository.ActivityRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, activityRepo: activityRepo}
}

// Create alta manual de producto. Cantidad inicial > 0 genera entrada IN.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity < 0 || in.MinStock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultCategory
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		Price:       in.Price,
		Category:    category,
		SupplierID:  in.SupplierID,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if in.Quantity > 0 {
		appendActivity(uc.activityRepo, entity.ActivityIN, in.Quantity,
			fmt.Sprintf("Alta manual: +%d %s", in.Quantity, name))
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. nil, nil cuando no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista el catálogo con paginación en memoria (el catálogo de un abasto
// cabe completo en el snapshot que ya usa el matcher).
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	total := len(products)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range products[start:end] {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListLowStock productos en o por debajo de su umbral de reposición.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, *toProductResponse(p))
		}
	}
	return out, nil
}

// Update edición parcial. Un cambio de cantidad genera entrada ADJUSTMENT con
// el delta; cantidad y precio negativos se rechazan.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	adjustment := 0
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		adjustment = *in.Quantity - product.Quantity
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.LastUpdated = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if adjustment != 0 {
		appendActivity(uc.activityRepo, entity.ActivityADJUSTMENT, adjustment,
			fmt.Sprintf("Ajuste manual: %+d %s", adjustment, product.Name))
	}
	return toProductResponse(product), nil
}

// StockOut salida manual de stock. amount debe ser un entero positivo; la
// cantidad nunca baja de cero: una salida mayor al stock disponible se trunca
// silenciosamente y se registra el delta efectivo. Delta cero (stock ya en
// cero) no muta nada ni deja entrada de actividad.
func (uc *ProductUseCase) StockOut(id string, amount int) (*dto.ProductResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	newQty := product.Quantity - amount
	if newQty < 0 {
		newQty = 0
	}
	delta := product.Quantity - newQty
	if delta == 0 {
		return toProductResponse(product), nil
	}
	product.Quantity = newQty
	product.LastUpdated = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	appendActivity(uc.activityRepo, entity.ActivityOUT, delta,
		fmt.Sprintf("Salida manual: -%d %s", delta, product.Name))
	return toProductResponse(product), nil
}

// appendActivity anexa al registro de actividad con mejor esfuerzo.
func appendActivity(repo repository.ActivityRepository, typ string, amount int, description string) {
	err := repo.Append(&entity.Activity{
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

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
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
	}
}
