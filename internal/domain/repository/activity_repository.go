package repository

import "github.com/jhoicas/abasto-api/internal/domain/entity"

// ActivityRepository define el puerto del registro de actividad (append-only).
// Append es fire-and-forget desde la perspectiva del motor: quien lo llama
// registra el error y continúa.
type ActivityRepository interface {
	Append(activity *entity.Activity) error
	List(limit, offset int) ([]*entity.Activity, error)
}
