package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock umbral de reposición asignado a productos creados por ingesta.
const DefaultMinStock = 10

// DefaultCategory categoría asignada cuando la factura o el CSV no traen una.
const DefaultCategory = "General"

// Product representa un producto del catálogo del abasto.
// Price siempre se persiste en la moneda canónica (USD); la conversión desde Bs
// ocurre en el motor de conciliación antes de llegar aquí.
// Quantity y Price nunca quedan negativos tras ninguna operación.
type Product struct {
	ID          string
	Name        string
	Quantity    int             // unidades físicas en existencia
	MinStock    int             // umbral de reposición
	Price       decimal.Decimal // precio unitario en USD
	Category    string
	SupplierID  string // referencia débil a Supplier; vacío si se desconoce
	LastUpdated time.Time
	CreatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de reposición.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
