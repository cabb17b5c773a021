package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del registro de actividad sobre PostgreSQL.
// Solo INSERT y SELECT: la tabla es append-only.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append persiste una entrada de actividad.
func (r *ActivityRepo) Append(activity *entity.Activity) error {
	query := `
		INSERT INTO activity_log (id, type, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.Type, activity.Description, activity.Amount, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// List entradas más recientes primero.
func (r *ActivityRepo) List(limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, type, description, amount, created_at
		FROM activity_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Description, &a.Amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, &a)
	}
	return entries, rows.Err()
}
