// Package analytics arma el dashboard operativo de la sucursal a partir de
// consultas de solo lectura.
package analytics

import (
	"context"
	"sync"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// DashboardUseCase agrega los indicadores del dashboard.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	rateRepo      repository.CustomerRateRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, rateRepo repository.CustomerRateRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, rateRepo: rateRepo}
}

// GetSummary ejecuta las consultas del dashboard en paralelo y combina los
// resultados. Si alguna falla, falla el resumen completo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, branchID string) (*dto.DashboardSummaryDTO, error) {
	var (
		wg        sync.WaitGroup
		counts    *repository.BranchCounts
		deviation *repository.RateDeviationStats
		withRate  int64

		countsErr, deviationErr, withRateErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		counts, countsErr = uc.analyticsRepo.GetBranchCounts(ctx, branchID)
	}()
	go func() {
		defer wg.Done()
		deviation, deviationErr = uc.analyticsRepo.GetRateDeviation(ctx, branchID)
	}()
	go func() {
		defer wg.Done()
		withRate, withRateErr = uc.rateRepo.CountOverriddenArticles(branchID)
	}()
	wg.Wait()

	if countsErr != nil {
		return nil, countsErr
	}
	if deviationErr != nil {
		return nil, deviationErr
	}
	if withRateErr != nil {
		return nil, withRateErr
	}

	return &dto.DashboardSummaryDTO{
		Articles:         counts.Articles,
		Customers:        counts.Customers,
		Bookings:         counts.Bookings,
		Deliveries:       counts.Deliveries,
		DeliveriesToday:  counts.DeliveriesToday,
		ArticlesWithRate: withRate,
		RateDeviation: dto.RateDeviationDTO{
			OverrideCount: deviation.OverrideCount,
			MinPercent:    deviation.MinPercent,
			AvgPercent:    deviation.AvgPercent,
			MaxPercent:    deviation.MaxPercent,
		},
	}, nil
}
