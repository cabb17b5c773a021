package ingest

import (
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/abasto-api/internal/domain/catalog"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
)

// AliasResolver reescribe los nombres extraídos por OCR hacia los nombres
// canónicos del catálogo antes de que el usuario revise la factura.
//
// A diferencia del merge final, aquí solo dispara el alias un match exacto
// normalizado: renombrar "H. PAN" a "Harina Pan" por substring en esta etapa
// podría fusionar silenciosamente productos distintos.
type AliasResolver struct {
	productRepo repository.ProductRepository
}

// NewAliasResolver construye el resolutor.
func NewAliasResolver(productRepo repository.ProductRepository) *AliasResolver {
	return &AliasResolver{productRepo: productRepo}
}

// ResolveAliases devuelve una copia de items con nombre y categoría canónicos
// donde hubo match exacto; el resto pasa sin tocar. Es mejor esfuerzo: si el
// catálogo no se puede leer, devuelve los items originales y la ingesta sigue.
func (r *AliasResolver) ResolveAliases(items []entity.InvoiceItem) []entity.InvoiceItem {
	resolved, _ := r.ResolveWithMatches(items)
	return resolved
}

// ResolveWithMatches hace lo mismo que ResolveAliases y además indica, por
// posición, qué items quedaron apuntando a un producto existente (para que la
// pantalla de revisión los distinga de los productos nuevos).
func (r *AliasResolver) ResolveWithMatches(items []entity.InvoiceItem) ([]entity.InvoiceItem, []bool) {
	out := make([]entity.InvoiceItem, len(items))
	copy(out, items)
	matched := make([]bool, len(items))

	snapshot, err := r.productRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("alias: catálogo ilegible, items sin resolver")
		return out, matched
	}

	for i := range out {
		match := catalog.ExactMatch(out[i].ProductName, snapshot)
		if match == nil {
			continue
		}
		out[i].ProductName = match.Name
		if match.Category != "" {
			out[i].Category = match.Category
		}
		matched[i] = true
	}
	return out, matched
}
