package rates

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	domrates "github.com/jhoicas/Despacho-api/internal/domain/rates"
)

// Estados de un cambio frente a la persistencia.
const (
	ChangeStatusNew    = "new"    // no existía override para el par
	ChangeStatusUpdate = "update" // existía y se reemplaza
)

// RateChange es un cambio calculado y aún no persistido para un par
// (artículo, cliente). Lleva los nombres resueltos y los deltas para que la
// capa de presentación arme la tabla de diff sin recalcular nada.
type RateChange struct {
	ArticleID     string
	ArticleName   string
	CustomerID    string
	CustomerName  string
	OldRate       *decimal.Decimal // nil ⇔ no existía override (alta)
	NewRate       decimal.Decimal
	Operation     string
	Value         decimal.Decimal
	AbsDelta      decimal.Decimal  // NewRate - (OldRate ?? BaseRate)
	PctDelta      *decimal.Decimal // nil si la referencia es cero
	SourceMissing bool
}

// Status devuelve "new" o "update" según exista override previo.
func (c RateChange) Status() string {
	if c.OldRate == nil {
		return ChangeStatusNew
	}
	return ChangeStatusUpdate
}

// operationValue extrae el valor numérico reportable de la operación
// (cero para copy_from, que no lleva valor).
func operationValue(op domrates.Operation) decimal.Decimal {
	switch v := op.(type) {
	case domrates.Percentage:
		return v.Value
	case domrates.FixedAmount:
		return v.Value
	case domrates.SetRate:
		return v.Value
	default:
		return decimal.Zero
	}
}

// buildChanges produce la lista de cambios: producto cruzado de artículos ×
// clientes seleccionados, en orden de selección. Ids que ya no resuelven a una
// entidad se saltan sin error. Puro: no hace I/O y es idempotente para una
// misma selección, configuración y caché.
func buildChanges(
	articleIDs, customerIDs []string,
	articleByID map[string]*entity.Article,
	customerByID map[string]*entity.Customer,
	ratesFor func(articleID string) map[string]decimal.Decimal,
	cfg domrates.BulkConfig,
) []RateChange {
	lookup := func(id string) (decimal.Decimal, bool) {
		a, ok := articleByID[id]
		if !ok {
			return decimal.Zero, false
		}
		return a.BaseRate, true
	}
	opName := cfg.Op.Name()
	opValue := operationValue(cfg.Op)

	changes := make([]RateChange, 0, len(articleIDs)*len(customerIDs))
	for _, articleID := range articleIDs {
		article, ok := articleByID[articleID]
		if !ok {
			continue // id obsoleto: el artículo salió del universo
		}
		overrides := ratesFor(articleID)
		for _, customerID := range customerIDs {
			customer, ok := customerByID[customerID]
			if !ok {
				continue
			}
			var current *decimal.Decimal
			if rate, ok := overrides[customerID]; ok {
				r := rate
				current = &r
			}
			res := domrates.CalculateNewRate(article.BaseRate, current, cfg, lookup)

			reference := article.BaseRate
			if current != nil {
				reference = *current
			}
			abs := res.Rate.Sub(reference)
			var pct *decimal.Decimal
			if !reference.IsZero() {
				p := abs.Div(reference).Mul(decimal.NewFromInt(100))
				pct = &p
			}
			changes = append(changes, RateChange{
				ArticleID:     articleID,
				ArticleName:   article.Name,
				CustomerID:    customerID,
				CustomerName:  customer.Name,
				OldRate:       current,
				NewRate:       res.Rate,
				Operation:     opName,
				Value:         opValue,
				AbsDelta:      abs,
				PctDelta:      pct,
				SourceMissing: res.SourceMissing,
			})
		}
	}
	return changes
}
