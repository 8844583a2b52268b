package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRate es la tarifa acordada con un cliente para un artículo:
// sobreescribe BaseRate del artículo. Máximo una por par (customer, article).
type CustomerRate struct {
	ID         string
	BranchID   string
	CustomerID string
	ArticleID  string
	Rate       decimal.Decimal // nunca negativa
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
