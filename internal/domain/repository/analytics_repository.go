package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// BranchCounts conteos básicos de la sucursal para el dashboard.
type BranchCounts struct {
	Articles        int64
	Customers       int64
	Bookings        int64
	Deliveries      int64
	DeliveriesToday int64
}

// RateDeviationStats desviación de los overrides frente a la tarifa base:
// (override - base) / base * 100, agregada sobre todos los overrides de la
// sucursal. Un promedio negativo indica descuentos; positivo, tarifas premium.
type RateDeviationStats struct {
	OverrideCount int64
	MinPercent    decimal.Decimal
	AvgPercent    decimal.Decimal
	MaxPercent    decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetBranchCounts(ctx context.Context, branchID string) (*BranchCounts, error)
	GetRateDeviation(ctx context.Context, branchID string) (*RateDeviationStats, error)
}
