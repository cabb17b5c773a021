package repository

import "github.com/jhoicas/abasto-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// Los proveedores nunca se actualizan ni se eliminan: solo alta y lectura.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	List() ([]*entity.Supplier, error)
}
