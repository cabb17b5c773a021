package usecase

import (
	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// SupplierUseCase lectura de proveedores (el alta la hace el registrador del
// motor de conciliación, nunca un endpoint directo).
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// List todos los proveedores conocidos.
func (uc *SupplierUseCase) List() ([]dto.SupplierResponse, error) {
	suppliers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierResponse{
			ID:        s.ID,
			Name:      s.Name,
			RIF:       s.RIF,
			FirstSeen: s.FirstSeen,
		})
	}
	return out, nil
}
