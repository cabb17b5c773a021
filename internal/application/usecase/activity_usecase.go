package usecase

import (
	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// ActivityUseCase lectura del registro de actividad.
type ActivityUseCase struct {
	repo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List entradas más recientes primero.
func (uc *ActivityUseCase) List(page dto.PageRequest) (*dto.ActivityListResponse, error) {
	page.DefaultPage()
	entries, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityResponse{
			ID:          e.ID,
			Type:        e.Type,
			Description: e.Description,
			Amount:      e.Amount,
			CreatedAt:   e.CreatedAt,
		})
	}
	return &dto.ActivityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
