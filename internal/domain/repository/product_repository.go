package repository

import "github.com/jhoicas/abasto-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// List devuelve el snapshot completo del catálogo: el emparejamiento de
// nombres se hace en memoria sobre ese snapshot, no en SQL.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
}
