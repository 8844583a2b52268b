package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen operativo de la sucursal.
type DashboardSummaryDTO struct {
	Articles         int64            `json:"articles"`
	Customers        int64            `json:"customers"`
	Bookings         int64            `json:"bookings"`
	Deliveries       int64            `json:"deliveries"`
	DeliveriesToday  int64            `json:"deliveries_today"`
	ArticlesWithRate int64            `json:"articles_with_rate"` // artículos con al menos un override
	RateDeviation    RateDeviationDTO `json:"rate_deviation"`
}

// RateDeviationDTO desviación porcentual de los overrides frente a la base.
type RateDeviationDTO struct {
	OverrideCount int64           `json:"override_count"`
	MinPercent    decimal.Decimal `json:"min_percent"`
	AvgPercent    decimal.Decimal `json:"avg_percent"`
	MaxPercent    decimal.Decimal `json:"max_percent"`
}
