package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, quantity, min_stock, price, category, supplier_id, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	supplierID := (*string)(nil)
	if product.SupplierID != "" {
		supplierID = &product.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.MinStock,
		product.Price, product.Category, supplierID, product.LastUpdated, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil, nil cuando no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, quantity, min_stock, price, category, supplier_id, last_updated, created_at
		FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List devuelve el catálogo completo, orden estable por nombre. El matcher
// trabaja en memoria sobre este snapshot.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `
		SELECT id, name, quantity, min_stock, price, category, supplier_id, last_updated, created_at
		FROM products ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, min_stock = $4, price = $5, category = $6, supplier_id = $7, last_updated = $8
		WHERE id = $1`
	supplierID := (*string)(nil)
	if product.SupplierID != "" {
		supplierID = &product.SupplierID
	}
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.MinStock,
		product.Price, product.Category, supplierID, product.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var supplierID *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Quantity, &p.MinStock, &p.Price,
		&p.Category, &supplierID, &p.LastUpdated, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	return &p, nil
}
