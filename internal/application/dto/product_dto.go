package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta manual de producto.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	MinStock   int             `json:"min_stock"`
	Price      decimal.Decimal `json:"price"` // USD
	Category   string          `json:"category"`
	SupplierID string          `json:"supplier_id"`
}

// UpdateProductRequest edición parcial; nil = no tocar el campo.
// Editar Quantity genera una entrada ADJUSTMENT con el delta.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Quantity *int             `json:"quantity"`
	MinStock *int             `json:"min_stock"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

// StockOutRequest salida manual de stock.
type StockOutRequest struct {
	Amount int `json:"amount"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	Price       decimal.Decimal `json:"price"` // USD
	Category    string          `json:"category"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	LowStock    bool            `json:"low_stock"`
	LastUpdated time.Time       `json:"last_updated"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
