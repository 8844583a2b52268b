// Package rates implementa el cálculo puro de tarifas masivas: dada la tarifa
// base de un artículo, la tarifa vigente del cliente (si existe) y una
// configuración de operación, produce una tarifa nueva nunca negativa.
//
// El paquete no tiene dependencias de aplicación ni de infraestructura; el
// orquestador de cambios masivos lo invoca una vez por par (artículo, cliente).
package rates

import (
	"github.com/shopspring/decimal"
)

// Nombres de operación expuestos en previews y respuestas.
const (
	OpPercentage  = "percentage"
	OpFixedAmount = "fixed_amount"
	OpSetRate     = "set_rate"
	OpCopyFrom    = "copy_from"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// SourceLookup resuelve la tarifa base de un artículo origen (para copy_from).
// Devuelve false si el artículo no existe en el universo actual.
type SourceLookup func(articleID string) (decimal.Decimal, bool)

// Operation es una variante de operación masiva. Cada variante lleva
// exactamente los campos que necesita; no hay campos opcionales ambiguos.
type Operation interface {
	// Name devuelve el identificador estable de la operación.
	Name() string
	// apply calcula la tarifa cruda a partir de la tarifa de partida.
	// El segundo retorno indica que el artículo origen no se pudo resolver
	// (solo copy_from) y se usó la tarifa de partida como fallback.
	apply(starting decimal.Decimal, lookup SourceLookup) (decimal.Decimal, bool)
}

// Percentage aplica un delta porcentual: starting * (1 + Value/100).
// Un Value de -100 o menor produce una tarifa que el piso final lleva a cero.
type Percentage struct {
	Value decimal.Decimal
}

func (p Percentage) Name() string { return OpPercentage }

func (p Percentage) apply(starting decimal.Decimal, _ SourceLookup) (decimal.Decimal, bool) {
	return starting.Mul(one.Add(p.Value.Div(hundred))), false
}

// FixedAmount aplica un delta absoluto: starting + Value (Value puede ser negativo).
type FixedAmount struct {
	Value decimal.Decimal
}

func (f FixedAmount) Name() string { return OpFixedAmount }

func (f FixedAmount) apply(starting decimal.Decimal, _ SourceLookup) (decimal.Decimal, bool) {
	return starting.Add(f.Value), false
}

// SetRate fija la tarifa en Value; la tarifa de partida se ignora.
type SetRate struct {
	Value decimal.Decimal
}

func (s SetRate) Name() string { return OpSetRate }

func (s SetRate) apply(_ decimal.Decimal, _ SourceLookup) (decimal.Decimal, bool) {
	return s.Value, false
}

// CopyFrom copia la tarifa base del artículo origen. Si el origen no se
// resuelve, conserva la tarifa de partida y lo reporta como SourceMissing:
// el comportamiento del producto es el fallback silencioso, aquí lo hacemos
// observable por cambio.
type CopyFrom struct {
	SourceArticleID string
}

func (c CopyFrom) Name() string { return OpCopyFrom }

func (c CopyFrom) apply(starting decimal.Decimal, lookup SourceLookup) (decimal.Decimal, bool) {
	if lookup != nil {
		if rate, ok := lookup(c.SourceArticleID); ok {
			return rate, false
		}
	}
	return starting, true
}

// BulkConfig describe una operación masiva: la variante de operación más el
// sobre común (punto de partida, clamps y redondeo). Vive solo durante una
// sesión de cambio masivo.
type BulkConfig struct {
	Op          Operation
	ApplyToBase bool // true: partir de BaseRate; false: partir del override vigente (o BaseRate si no hay)
	MinRate     *decimal.Decimal
	MaxRate     *decimal.Decimal
	RoundTo     *int32 // decimales 0-3; nil = sin redondeo
}

// Validate verifica la configuración antes de previsualizar o aplicar.
func (c BulkConfig) Validate() error {
	if c.Op == nil {
		return ErrNoOperation
	}
	if cf, ok := c.Op.(CopyFrom); ok && cf.SourceArticleID == "" {
		return ErrNoSourceArticle
	}
	if c.RoundTo != nil && (*c.RoundTo < 0 || *c.RoundTo > 3) {
		return ErrRoundOutOfRange
	}
	return nil
}

// Result es el resultado del cálculo para un par (artículo, cliente).
type Result struct {
	Rate          decimal.Decimal
	SourceMissing bool // copy_from con artículo origen no resuelto (se usó fallback)
}

// CalculateNewRate calcula la tarifa nueva para un par. Es pura y determinista:
// se puede invocar cuantas veces haga falta al regenerar un preview.
//
// Orden de evaluación: tarifa de partida → operación → clamp mínimo → clamp
// máximo (sobre el valor ya acotado: si MinRate > MaxRate gana MaxRate) →
// redondeo → piso en cero.
func CalculateNewRate(baseRate decimal.Decimal, currentRate *decimal.Decimal, cfg BulkConfig, lookup SourceLookup) Result {
	starting := baseRate
	if !cfg.ApplyToBase && currentRate != nil {
		starting = *currentRate
	}

	rate, missing := cfg.Op.apply(starting, lookup)

	if cfg.MinRate != nil && rate.LessThan(*cfg.MinRate) {
		rate = *cfg.MinRate
	}
	if cfg.MaxRate != nil && rate.GreaterThan(*cfg.MaxRate) {
		rate = *cfg.MaxRate
	}
	if cfg.RoundTo != nil {
		rate = rate.Round(*cfg.RoundTo)
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return Result{Rate: rate, SourceMissing: missing}
}
