package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo (SKU) del catálogo logístico, propiedad de una sucursal.
// BaseRate es la tarifa de lista; las tarifas por cliente viven en CustomerRate.
type Article struct {
	ID                      string
	BranchID                string
	Name                    string
	Description             string
	BaseRate                decimal.Decimal // tarifa base, nunca negativa
	HSNCode                 string
	TaxRate                 decimal.Decimal // porcentaje 0-100
	UnitOfMeasure           string
	MinQuantity             int // mínimo 1
	IsFragile               bool
	RequiresSpecialHandling bool
	Notes                   string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
