// Package memory implementa los puertos de persistencia en memoria, protegidos
// por un RWMutex. Se usa en desarrollo (sin DATABASE_URL) y como doble de
// prueba en los tests de los casos de uso.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// Store contiene todas las colecciones bajo un mismo lock. Las vistas
// Products(), Suppliers(), Activity() y Users() exponen cada puerto.
type Store struct {
	mu        sync.RWMutex
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	activity  []*entity.Activity
	users     map[string]*entity.User
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		users:     make(map[string]*entity.User),
	}
}

// ── Products ──────────────────────────────────────────────────────────────────

type productView struct{ s *Store }

// Products devuelve el puerto ProductRepository.
func (s *Store) Products() repository.ProductRepository { return productView{s} }

func (v productView) Create(product *entity.Product) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	clone := *product
	v.s.products[product.ID] = &clone
	return nil
}

func (v productView) GetByID(id string) (*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (v productView) List() ([]*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(v.s.products))
	for _, p := range v.s.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v productView) Update(product *entity.Product) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *product
	v.s.products[product.ID] = &clone
	return nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

type supplierView struct{ s *Store }

// Suppliers devuelve el puerto SupplierRepository.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierView{s} }

func (v supplierView) Create(supplier *entity.Supplier) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	clone := *supplier
	v.s.suppliers[supplier.ID] = &clone
	return nil
}

func (v supplierView) List() ([]*entity.Supplier, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(v.s.suppliers))
	for _, s := range v.s.suppliers {
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstSeen.Before(out[j].FirstSeen) })
	return out, nil
}

// ── Activity ──────────────────────────────────────────────────────────────────

type activityView struct{ s *Store }

// Activity devuelve el puerto ActivityRepository.
func (s *Store) Activity() repository.ActivityRepository { return activityView{s} }

func (v activityView) Append(activity *entity.Activity) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	clone := *activity
	v.s.activity = append(v.s.activity, &clone)
	return nil
}

func (v activityView) List(limit, offset int) ([]*entity.Activity, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	// Más recientes primero, como el ORDER BY created_at DESC de postgres.
	n := len(v.s.activity)
	out := make([]*entity.Activity, 0, limit)
	for i := n - 1 - offset; i >= 0 && len(out) < limit; i-- {
		clone := *v.s.activity[i]
		out = append(out, &clone)
	}
	return out, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userView struct{ s *Store }

// Users devuelve el puerto UserRepository.
func (s *Store) Users() repository.UserRepository { return userView{s} }

func (v userView) Create(user *entity.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	v.s.users[user.ID] = &clone
	return nil
}

func (v userView) FindByEmail(email string) (*entity.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, u := range v.s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}
