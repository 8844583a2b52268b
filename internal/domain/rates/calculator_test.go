package rates_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/domain/rates"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func roundTo(n int32) *int32 { return &n }

// lookupWith devuelve un SourceLookup sobre un mapa artículo → tarifa base.
func lookupWith(m map[string]string) rates.SourceLookup {
	return func(id string) (decimal.Decimal, bool) {
		s, ok := m[id]
		if !ok {
			return decimal.Zero, false
		}
		return dec(s), true
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones básicas
// ──────────────────────────────────────────────────────────────────────────────

// Porcentaje sobre la tarifa base: 100 * (1 + 10/100) = 110.
func TestCalculateNewRate_PorcentajeSobreBase(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("10")}, ApplyToBase: true}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("110").Equal(out.Rate), "esperaba 110, obtuve %s", out.Rate)
	assert.False(t, out.SourceMissing)
}

// Porcentaje sobre el override vigente: 80 * 1.10 = 88.
func TestCalculateNewRate_PorcentajeSobreOverride(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("10")}, ApplyToBase: false}
	out := rates.CalculateNewRate(dec("100"), decPtr("80"), cfg, nil)
	assert.True(t, dec("88").Equal(out.Rate), "esperaba 88, obtuve %s", out.Rate)
}

// Sin override vigente, ApplyToBase=false cae a la tarifa base.
func TestCalculateNewRate_SinOverrideCaeABase(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("10")}, ApplyToBase: false}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("110").Equal(out.Rate))
}

// Monto fijo negativo mayor que la tarifa: el piso final la lleva a 0.
func TestCalculateNewRate_MontoFijoNegativoPisoCero(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.FixedAmount{Value: dec("-150")}, ApplyToBase: true}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, decimal.Zero.Equal(out.Rate), "esperaba 0, obtuve %s", out.Rate)
}

// set_rate ignora la tarifa de partida por completo.
func TestCalculateNewRate_SetRateIgnoraPartida(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.SetRate{Value: dec("250")}, ApplyToBase: true}
	out := rates.CalculateNewRate(dec("100"), decPtr("80"), cfg, nil)
	assert.True(t, dec("250").Equal(out.Rate))
}

// Porcentaje de -100 produce exactamente 0 (no negativo).
func TestCalculateNewRate_PorcentajeMenosCien(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("-100")}, ApplyToBase: true}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, decimal.Zero.Equal(out.Rate))
}

// Escenario "tarifa premium": base 1000, override 900, +20% sobre el override
// → 1080 (queda por encima de la base, descuento negativo en la UI).
func TestCalculateNewRate_EscenarioTarifaPremium(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("20")}, ApplyToBase: false}
	out := rates.CalculateNewRate(dec("1000"), decPtr("900"), cfg, nil)
	assert.True(t, dec("1080").Equal(out.Rate), "esperaba 1080, obtuve %s", out.Rate)
}

// ──────────────────────────────────────────────────────────────────────────────
// copy_from
// ──────────────────────────────────────────────────────────────────────────────

// copy_from con origen resuelto copia la tarifa base del origen.
func TestCalculateNewRate_CopyFromResuelto(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.CopyFrom{SourceArticleID: "X"}, ApplyToBase: true}
	lookup := lookupWith(map[string]string{"X": "42"})
	out := rates.CalculateNewRate(dec("100"), nil, cfg, lookup)
	assert.True(t, dec("42").Equal(out.Rate))
	assert.False(t, out.SourceMissing)
}

// copy_from con origen no resuelto conserva la tarifa de partida y marca
// SourceMissing: el fallback del producto se mantiene pero deja de ser mudo.
func TestCalculateNewRate_CopyFromOrigenAusente(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.CopyFrom{SourceArticleID: "no-existe"}, ApplyToBase: true}
	lookup := lookupWith(map[string]string{"X": "42"})
	out := rates.CalculateNewRate(dec("100"), nil, cfg, lookup)
	assert.True(t, dec("100").Equal(out.Rate), "debe conservar la tarifa de partida")
	assert.True(t, out.SourceMissing, "el fallback debe ser observable")
}

func TestCalculateNewRate_CopyFromSinLookup(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.CopyFrom{SourceArticleID: "X"}, ApplyToBase: true}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("100").Equal(out.Rate))
	assert.True(t, out.SourceMissing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clamps y redondeo
// ──────────────────────────────────────────────────────────────────────────────

// El clamp máximo se evalúa después del mínimo: con min=50 y max=40 sobre un
// resultado de 100, gana el máximo (40). Documentado, no auto-validado.
func TestCalculateNewRate_ClampMinMayorQueMax(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.SetRate{Value: dec("100")},
		MinRate:     decPtr("50"),
		MaxRate:     decPtr("40"),
		ApplyToBase: true,
	}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("40").Equal(out.Rate), "esperaba 40 (último clamp gana), obtuve %s", out.Rate)
}

func TestCalculateNewRate_ClampMinimo(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.FixedAmount{Value: dec("-90")},
		MinRate:     decPtr("25"),
		ApplyToBase: true,
	}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("25").Equal(out.Rate))
}

func TestCalculateNewRate_ClampMaximo(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.Percentage{Value: dec("500")},
		MaxRate:     decPtr("300"),
		ApplyToBase: true,
	}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("300").Equal(out.Rate))
}

// Redondeo half-up a 2 decimales: 10 * 1.33333 = 13.3333 → 13.33.
func TestCalculateNewRate_RedondeoDosDecimales(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.Percentage{Value: dec("33.333")},
		ApplyToBase: true,
		RoundTo:     roundTo(2),
	}
	out := rates.CalculateNewRate(dec("10"), nil, cfg, nil)
	assert.True(t, dec("13.33").Equal(out.Rate), "esperaba 13.33, obtuve %s", out.Rate)
}

// Redondeo a 0 decimales con mitad exacta: 10.5 → 11 (half-up).
func TestCalculateNewRate_RedondeoMitadHaciaArriba(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.SetRate{Value: dec("10.5")},
		ApplyToBase: true,
		RoundTo:     roundTo(0),
	}
	out := rates.CalculateNewRate(dec("100"), nil, cfg, nil)
	assert.True(t, dec("11").Equal(out.Rate))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes
// ──────────────────────────────────────────────────────────────────────────────

// El piso en cero se cumple para cualquier operación y signo de valor.
func TestCalculateNewRate_NuncaNegativa(t *testing.T) {
	configs := []rates.BulkConfig{
		{Op: rates.Percentage{Value: dec("-250")}, ApplyToBase: true},
		{Op: rates.FixedAmount{Value: dec("-99999")}, ApplyToBase: false},
		{Op: rates.SetRate{Value: dec("-10")}, ApplyToBase: true},
		{Op: rates.SetRate{Value: dec("-10")}, ApplyToBase: true, RoundTo: roundTo(1)},
		{Op: rates.FixedAmount{Value: dec("-500")}, MinRate: decPtr("-40"), ApplyToBase: true},
	}
	for _, cfg := range configs {
		out := rates.CalculateNewRate(dec("100"), decPtr("80"), cfg, nil)
		assert.False(t, out.Rate.IsNegative(),
			"operación %s produjo tarifa negativa: %s", cfg.Op.Name(), out.Rate)
	}
}

// Mismo input, mismo output: el cálculo es puro y se puede regenerar el
// preview tantas veces como haga falta.
func TestCalculateNewRate_Determinista(t *testing.T) {
	cfg := rates.BulkConfig{
		Op:          rates.Percentage{Value: dec("17.5")},
		ApplyToBase: false,
		MinRate:     decPtr("10"),
		MaxRate:     decPtr("5000"),
		RoundTo:     roundTo(2),
	}
	a := rates.CalculateNewRate(dec("123.45"), decPtr("99.99"), cfg, nil)
	b := rates.CalculateNewRate(dec("123.45"), decPtr("99.99"), cfg, nil)
	assert.True(t, a.Rate.Equal(b.Rate))
	assert.Equal(t, a.SourceMissing, b.SourceMissing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de BulkConfig (precondiciones)
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkConfigValidate_OK(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.Percentage{Value: dec("5")}, RoundTo: roundTo(2)}
	require.NoError(t, cfg.Validate())
}

func TestBulkConfigValidate_SinOperacion(t *testing.T) {
	var cfg rates.BulkConfig
	assert.ErrorIs(t, cfg.Validate(), rates.ErrNoOperation)
}

func TestBulkConfigValidate_CopyFromSinOrigen(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.CopyFrom{}}
	assert.ErrorIs(t, cfg.Validate(), rates.ErrNoSourceArticle)
}

func TestBulkConfigValidate_RedondeoFueraDeRango(t *testing.T) {
	cfg := rates.BulkConfig{Op: rates.SetRate{Value: dec("1")}, RoundTo: roundTo(4)}
	assert.ErrorIs(t, cfg.Validate(), rates.ErrRoundOutOfRange)
}
