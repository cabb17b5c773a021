package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// SupplierRegistrar deduplica proveedores por RIF o por nombre.
// La N-ésima factura de un proveedor conocido nunca crea un registro duplicado.
type SupplierRegistrar struct {
	repo repository.SupplierRepository
}

// NewSupplierRegistrar construye el registrador.
func NewSupplierRegistrar(repo repository.SupplierRepository) *SupplierRegistrar {
	return &SupplierRegistrar{repo: repo}
}

// Register busca un proveedor por RIF (exacto, sensible a mayúsculas) o por
// nombre (insensible a mayúsculas) y devuelve el existente sin mutarlo, aunque
// el RIF o el nombre de la factura difieran levemente. Si no hay match crea el
// registro con FirstSeen = ahora.
//
// El RIF "N/A" (facturas sin identificación fiscal legible) se trata como
// desconocido: ahí solo aplica el fallback por nombre, para no fusionar
// proveedores distintos bajo el mismo marcador.
func (r *SupplierRegistrar) Register(name, rif string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(rif) == "" {
		rif = entity.UnknownRIF
	}

	existing, err := r.repo.List()
	if err != nil {
		return nil, err
	}
	rifKnown := rif != entity.UnknownRIF
	for _, s := range existing {
		if rifKnown && s.RIF == rif {
			return s, nil
		}
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}

	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		RIF:       rif,
		FirstSeen: time.Now(),
	}
	if err := r.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}
