package dto

import "time"

// ActivityResponse entrada del registro de actividad.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // IN | OUT | ADJUSTMENT | IMPORT
	Description string    `json:"description"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityListResponse listado paginado de actividad.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
