package rates

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// OrderedSet es un conjunto de ids que conserva el orden de inserción, para
// que el preview sea determinista y estable ante selecciones iguales.
type OrderedSet struct {
	ids   []string
	index map[string]struct{}
}

// NewOrderedSet construye un conjunto vacío.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{index: make(map[string]struct{})}
}

// Toggle agrega el id si no está, lo quita si está. Devuelve true si el id
// quedó seleccionado.
func (s *OrderedSet) Toggle(id string) bool {
	if _, ok := s.index[id]; ok {
		delete(s.index, id)
		for i, v := range s.ids {
			if v == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Replace reemplaza el contenido por los ids dados (en ese orden, sin duplicados).
func (s *OrderedSet) Replace(ids []string) {
	s.ids = s.ids[:0]
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

// Clear vacía el conjunto.
func (s *OrderedSet) Clear() {
	s.ids = s.ids[:0]
	s.index = make(map[string]struct{})
}

// Has indica pertenencia.
func (s *OrderedSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs devuelve una copia de los ids en orden de inserción.
func (s *OrderedSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len devuelve la cantidad de seleccionados.
func (s *OrderedSet) Len() int { return len(s.ids) }

// ── Filtros de búsqueda ───────────────────────────────────────────────────────

// RateFilter filtro categórico de artículos por existencia de overrides.
type RateFilter string

const (
	RateFilterAll          RateFilter = "all"
	RateFilterWithRates    RateFilter = "with_rates"
	RateFilterWithoutRates RateFilter = "without_rates"
)

// SelectionFilters filtros de texto y categoría de la sesión masiva.
type SelectionFilters struct {
	ArticleQuery  string
	RateFilter    RateFilter
	CustomerQuery string
}

// searchFold descompone, elimina marcas diacríticas y recompone: "Camión" y
// "camion" quedan iguales tras normalizar.
var searchFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSearch deja un término listo para comparación: sin tildes y en minúsculas.
func normalizeSearch(s string) string {
	folded, _, err := transform.String(searchFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// matchesArticle compara la consulta (ya normalizada) contra nombre,
// descripción y código HSN del artículo.
func matchesArticle(a *entity.Article, normQuery string) bool {
	if normQuery == "" {
		return true
	}
	return strings.Contains(normalizeSearch(a.Name), normQuery) ||
		strings.Contains(normalizeSearch(a.Description), normQuery) ||
		strings.Contains(normalizeSearch(a.HSNCode), normQuery)
}

// matchesCustomer compara la consulta contra nombre, teléfono y email.
func matchesCustomer(c *entity.Customer, normQuery string) bool {
	if normQuery == "" {
		return true
	}
	return strings.Contains(normalizeSearch(c.Name), normQuery) ||
		strings.Contains(normalizeSearch(c.Phone), normQuery) ||
		strings.Contains(normalizeSearch(c.Email), normQuery)
}

// FilterArticles devuelve los artículos que pasan la búsqueda de texto y el
// filtro categórico. overridden es el conjunto de ids con al menos un override.
func FilterArticles(articles []*entity.Article, f SelectionFilters, overridden map[string]struct{}) []*entity.Article {
	normQuery := normalizeSearch(f.ArticleQuery)
	out := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if !matchesArticle(a, normQuery) {
			continue
		}
		_, has := overridden[a.ID]
		switch f.RateFilter {
		case RateFilterWithRates:
			if !has {
				continue
			}
		case RateFilterWithoutRates:
			if has {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// FilterCustomers devuelve los clientes que pasan la búsqueda de texto.
func FilterCustomers(customers []*entity.Customer, f SelectionFilters) []*entity.Customer {
	normQuery := normalizeSearch(f.CustomerQuery)
	out := make([]*entity.Customer, 0, len(customers))
	for _, c := range customers {
		if matchesCustomer(c, normQuery) {
			out = append(out, c)
		}
	}
	return out
}
