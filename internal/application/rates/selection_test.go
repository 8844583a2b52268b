package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// OrderedSet
// ─────────────────────────────────────────────────────────────────────────────

func TestOrderedSet_ToggleAlterna(t *testing.T) {
	s := NewOrderedSet()

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Toggle("a"), "el segundo toggle deselecciona")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestOrderedSet_ConservaOrdenDeInsercion(t *testing.T) {
	s := NewOrderedSet()
	s.Toggle("c")
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a") // quita a
	s.Toggle("a") // la vuelve a agregar, ahora al final

	assert.Equal(t, []string{"c", "b", "a"}, s.IDs())
}

func TestOrderedSet_ReplaceDescartaDuplicados(t *testing.T) {
	s := NewOrderedSet()
	s.Toggle("x")
	s.Replace([]string{"a", "b", "a", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.False(t, s.Has("x"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Filtros
// ─────────────────────────────────────────────────────────────────────────────

func articulo(id, name, hsn string) *entity.Article {
	return &entity.Article{ID: id, Name: name, HSNCode: hsn, BaseRate: decimal.NewFromInt(100)}
}

func TestFilterArticles_BusquedaIgnoraTildesYMayusculas(t *testing.T) {
	articles := []*entity.Article{
		articulo("a1", "Camión refrigerado", ""),
		articulo("a2", "Paquete estándar", ""),
	}

	out := FilterArticles(articles, SelectionFilters{ArticleQuery: "CAMION"}, nil)

	assert.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestFilterArticles_BuscaPorCodigoHSN(t *testing.T) {
	articles := []*entity.Article{
		articulo("a1", "Caja", "4819"),
		articulo("a2", "Pallet", "4415"),
	}

	out := FilterArticles(articles, SelectionFilters{ArticleQuery: "4415"}, nil)

	assert.Len(t, out, 1)
	assert.Equal(t, "a2", out[0].ID)
}

func TestFilterArticles_FiltroCategorico(t *testing.T) {
	articles := []*entity.Article{
		articulo("a1", "Caja", ""),
		articulo("a2", "Pallet", ""),
		articulo("a3", "Sobre", ""),
	}
	overridden := map[string]struct{}{"a2": {}}

	conTarifas := FilterArticles(articles, SelectionFilters{RateFilter: RateFilterWithRates}, overridden)
	sinTarifas := FilterArticles(articles, SelectionFilters{RateFilter: RateFilterWithoutRates}, overridden)
	todos := FilterArticles(articles, SelectionFilters{RateFilter: RateFilterAll}, overridden)

	assert.Len(t, conTarifas, 1)
	assert.Equal(t, "a2", conTarifas[0].ID)
	assert.Len(t, sinTarifas, 2)
	assert.Len(t, todos, 3)
}

func TestFilterArticles_CombinaTextoYCategoria(t *testing.T) {
	articles := []*entity.Article{
		articulo("a1", "Caja chica", ""),
		articulo("a2", "Caja grande", ""),
		articulo("a3", "Pallet", ""),
	}
	overridden := map[string]struct{}{"a2": {}, "a3": {}}

	out := FilterArticles(articles, SelectionFilters{ArticleQuery: "caja", RateFilter: RateFilterWithRates}, overridden)

	assert.Len(t, out, 1)
	assert.Equal(t, "a2", out[0].ID)
}

func TestFilterCustomers_BuscaPorNombreTelefonoEmail(t *testing.T) {
	customers := []*entity.Customer{
		{ID: "c1", Name: "José Pérez", Phone: "3001234567", Email: "jose@example.com"},
		{ID: "c2", Name: "Logística Andina", Phone: "6015550000", Email: "compras@andina.co"},
	}

	porNombre := FilterCustomers(customers, SelectionFilters{CustomerQuery: "jose"})
	porTelefono := FilterCustomers(customers, SelectionFilters{CustomerQuery: "555"})
	porEmail := FilterCustomers(customers, SelectionFilters{CustomerQuery: "andina.co"})

	assert.Len(t, porNombre, 1)
	assert.Equal(t, "c1", porNombre[0].ID)
	assert.Len(t, porTelefono, 1)
	assert.Equal(t, "c2", porTelefono[0].ID)
	assert.Len(t, porEmail, 1)
	assert.Equal(t, "c2", porEmail[0].ID)
}

func TestFilterCustomers_ConsultaVaciaDevuelveTodos(t *testing.T) {
	customers := []*entity.Customer{{ID: "c1"}, {ID: "c2"}}

	out := FilterCustomers(customers, SelectionFilters{})

	assert.Len(t, out, 2)
}
