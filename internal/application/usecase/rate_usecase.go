package usecase

import (
	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// RateQueryUseCase consultas de lectura sobre overrides de tarifa. Las
// escrituras pasan siempre por el orquestador de cambios masivos.
type RateQueryUseCase struct {
	articleRepo repository.ArticleRepository
	rateRepo    repository.CustomerRateRepository
}

// NewRateQueryUseCase construye el caso de uso.
func NewRateQueryUseCase(articleRepo repository.ArticleRepository, rateRepo repository.CustomerRateRepository) *RateQueryUseCase {
	return &RateQueryUseCase{articleRepo: articleRepo, rateRepo: rateRepo}
}

// ListByArticle devuelve los overrides vigentes de un artículo de la sucursal.
func (uc *RateQueryUseCase) ListByArticle(branchID, articleID string) ([]dto.CustomerRateResponse, error) {
	article, err := uc.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	rates, err := uc.rateRepo.ListByArticle(articleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, dto.CustomerRateResponse{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			ArticleID:  r.ArticleID,
			Rate:       r.Rate,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return out, nil
}

// GetForCustomer devuelve la tarifa efectiva de un par (cliente, artículo):
// el override si existe, la tarifa base si no.
func (uc *RateQueryUseCase) GetForCustomer(branchID, customerID, articleID string) (*dto.CustomerRateResponse, error) {
	article, err := uc.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	override, err := uc.rateRepo.GetByCustomerAndArticle(customerID, articleID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		return &dto.CustomerRateResponse{
			ID:         override.ID,
			CustomerID: override.CustomerID,
			ArticleID:  override.ArticleID,
			Rate:       override.Rate,
			CreatedAt:  override.CreatedAt,
			UpdatedAt:  override.UpdatedAt,
		}, nil
	}
	// Sin override: la tarifa efectiva es la base del artículo.
	return &dto.CustomerRateResponse{
		CustomerID: customerID,
		ArticleID:  articleID,
		Rate:       article.BaseRate,
	}, nil
}
