package dto

// ImportResult resumen de una importación CSV.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"` // filas vacías o sin nombre
}
