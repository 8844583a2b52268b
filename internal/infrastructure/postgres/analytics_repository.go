package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetBranchCounts devuelve los conteos básicos de la sucursal en una sola consulta.
func (r *AnalyticsRepo) GetBranchCounts(ctx context.Context, branchID string) (*repository.BranchCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM articles WHERE branch_id = $1),
			(SELECT COUNT(*) FROM customers WHERE branch_id = $1),
			(SELECT COUNT(*) FROM bookings WHERE branch_id = $1),
			(SELECT COUNT(*) FROM deliveries WHERE branch_id = $1),
			(SELECT COUNT(*) FROM deliveries WHERE branch_id = $1 AND delivered_at >= date_trunc('day', now()))`
	var c repository.BranchCounts
	err := r.q.QueryRow(ctx, query, branchID).Scan(
		&c.Articles, &c.Customers, &c.Bookings, &c.Deliveries, &c.DeliveriesToday)
	if err != nil {
		return nil, fmt.Errorf("branch counts: %w", err)
	}
	return &c, nil
}

// GetRateDeviation agrega la desviación porcentual de los overrides frente a
// la tarifa base. Artículos con base cero se excluyen del cálculo porcentual.
func (r *AnalyticsRepo) GetRateDeviation(ctx context.Context, branchID string) (*repository.RateDeviationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(MIN((cr.rate - a.base_rate) / a.base_rate * 100), 0),
			COALESCE(AVG((cr.rate - a.base_rate) / a.base_rate * 100), 0),
			COALESCE(MAX((cr.rate - a.base_rate) / a.base_rate * 100), 0)
		FROM customer_rates cr
		JOIN articles a ON a.id = cr.article_id
		WHERE cr.branch_id = $1 AND a.base_rate <> 0`
	var s repository.RateDeviationStats
	err := r.q.QueryRow(ctx, query, branchID).Scan(
		&s.OverrideCount, &s.MinPercent, &s.AvgPercent, &s.MaxPercent)
	if err != nil {
		return nil, fmt.Errorf("rate deviation: %w", err)
	}
	return &s, nil
}
