// Package catalog contiene el emparejador de nombres de producto (servicio de
// dominio). Los nombres que llegan del OCR vienen truncados, con acentos
// perdidos o con mayúsculas arbitrarias ("H. PAN" por "Harina Pan"), así que
// la comparación trabaja siempre sobre una forma normalizada.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// Matcher es la estrategia de emparejamiento de nombres contra un snapshot del
// catálogo. Se mantiene como interfaz para poder sustituir la heurística de
// substring por distancia de edición o solapamiento de tokens sin tocar a los
// llamadores.
type Matcher interface {
	FindMatch(name string, products []*entity.Product) *entity.Product
}

// stripAccents elimina marcas diacríticas: "azúcar" -> "azucar".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize reduce un nombre a su forma de comparación: sin espacios en los
// extremos, en minúsculas y sin acentos.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if out, _, err := transform.String(stripAccents, s); err == nil {
		return out
	}
	return s
}

// SubstringMatcher es la estrategia por defecto:
//  1. igualdad exacta normalizada -> match inmediato;
//  2. primer candidato cuyo nombre contiene al buscado como substring, o que
//     está contenido en él -> match.
//
// El substring bidireccional es deliberadamente permisivo: tolera truncados de
// OCR a costa de posibles falsos positivos con nombres muy cortos.
type SubstringMatcher struct{}

var _ Matcher = SubstringMatcher{}

// FindMatch aplica la política de emparejamiento sobre el snapshot.
func (SubstringMatcher) FindMatch(name string, products []*entity.Product) *entity.Product {
	needle := Normalize(name)
	if needle == "" {
		return nil
	}
	for _, p := range products {
		if Normalize(p.Name) == needle {
			return p
		}
	}
	for _, p := range products {
		candidate := Normalize(p.Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return p
		}
	}
	return nil
}

// ExactMatch empareja solo por igualdad exacta normalizada. Es la variante
// estricta que usa la resolución de alias y la importación CSV, donde un falso
// positivo renombraría silenciosamente productos distintos.
func ExactMatch(name string, products []*entity.Product) *entity.Product {
	needle := Normalize(name)
	if needle == "" {
		return nil
	}
	for _, p := range products {
		if Normalize(p.Name) == needle {
			return p
		}
	}
	return nil
}
