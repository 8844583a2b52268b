// Package usecase contiene los casos de uso del back office: catálogo,
// clientes y sucursales.
package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// ArticleUseCase maneja el CRUD del catálogo de artículos y los borradores
// del formulario de alta.
type ArticleUseCase struct {
	articleRepo repository.ArticleRepository
	draftRepo   repository.ArticleDraftRepository
	bookingRepo repository.BookingRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(
	articleRepo repository.ArticleRepository,
	draftRepo repository.ArticleDraftRepository,
	bookingRepo repository.BookingRepository,
) *ArticleUseCase {
	return &ArticleUseCase{
		articleRepo: articleRepo,
		draftRepo:   draftRepo,
		bookingRepo: bookingRepo,
	}
}

// Create da de alta un artículo. El nombre es único dentro de la sucursal y la
// tarifa base no puede ser negativa. Al crear con éxito se descarta el borrador
// del usuario.
func (uc *ArticleUseCase) Create(branchID, userID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.BaseRate.IsNegative() || in.TaxRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.articleRepo.GetByBranchAndName(branchID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	minQty := in.MinQuantity
	if minQty < 1 {
		minQty = 1
	}
	now := time.Now()
	article := &entity.Article{
		ID:                      uuid.New().String(),
		BranchID:                branchID,
		Name:                    in.Name,
		Description:             in.Description,
		BaseRate:                in.BaseRate,
		HSNCode:                 in.HSNCode,
		TaxRate:                 in.TaxRate,
		UnitOfMeasure:           in.UnitOfMeasure,
		MinQuantity:             minQty,
		IsFragile:               in.IsFragile,
		RequiresSpecialHandling: in.RequiresSpecialHandling,
		Notes:                   in.Notes,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.articleRepo.Create(article); err != nil {
		return nil, err
	}
	// El borrador ya cumplió su función; limpiarlo es best effort.
	_ = uc.draftRepo.Clear(branchID, userID)

	return toArticleResponse(article), nil
}

// GetByID devuelve un artículo de la sucursal.
func (uc *ArticleUseCase) GetByID(branchID, id string) (*dto.ArticleResponse, error) {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// Update modifica los campos presentes en el request.
func (uc *ArticleUseCase) Update(branchID, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.BranchID != branchID {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil && *in.Name != article.Name {
		dup, err := uc.articleRepo.GetByBranchAndName(branchID, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != article.ID {
			return nil, domain.ErrDuplicate
		}
		article.Name = *in.Name
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.BaseRate != nil {
		if in.BaseRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		article.BaseRate = *in.BaseRate
	}
	if in.HSNCode != nil {
		article.HSNCode = *in.HSNCode
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		article.TaxRate = *in.TaxRate
	}
	if in.UnitOfMeasure != nil {
		article.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		article.MinQuantity = *in.MinQuantity
	}
	if in.IsFragile != nil {
		article.IsFragile = *in.IsFragile
	}
	if in.RequiresSpecialHandling != nil {
		article.RequiresSpecialHandling = *in.RequiresSpecialHandling
	}
	if in.Notes != nil {
		article.Notes = *in.Notes
	}
	article.UpdatedAt = time.Now()

	if err := uc.articleRepo.Update(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List devuelve una página de artículos de la sucursal.
func (uc *ArticleUseCase) List(branchID string, page dto.PageRequest) (*dto.ArticleListResponse, error) {
	page.DefaultPage()
	articles, err := uc.articleRepo.ListByBranch(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un artículo del catálogo. Un artículo con guías asociadas no
// se puede eliminar: queda la traza histórica de la tarifa aplicada.
func (uc *ArticleUseCase) Delete(branchID, id string) error {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil || article.BranchID != branchID {
		return domain.ErrNotFound
	}
	count, err := uc.bookingRepo.CountByArticle(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrArticleReferenced
	}
	return uc.articleRepo.Delete(id)
}

// GetDraft devuelve el borrador del formulario de artículo del usuario, o
// ErrNotFound si no hay.
func (uc *ArticleUseCase) GetDraft(branchID, userID string) (*dto.ArticleDraftResponse, error) {
	payload, err := uc.draftRepo.Get(branchID, userID)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ArticleDraftResponse{Payload: payload}, nil
}

// SaveDraft guarda (o reemplaza) el borrador del usuario.
func (uc *ArticleUseCase) SaveDraft(branchID, userID string, payload []byte) error {
	if len(payload) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.draftRepo.Save(branchID, userID, payload)
}

// ClearDraft descarta el borrador del usuario.
func (uc *ArticleUseCase) ClearDraft(branchID, userID string) error {
	return uc.draftRepo.Clear(branchID, userID)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:                      a.ID,
		BranchID:                a.BranchID,
		Name:                    a.Name,
		Description:             a.Description,
		BaseRate:                a.BaseRate,
		HSNCode:                 a.HSNCode,
		TaxRate:                 a.TaxRate,
		UnitOfMeasure:           a.UnitOfMeasure,
		MinQuantity:             a.MinQuantity,
		IsFragile:               a.IsFragile,
		RequiresSpecialHandling: a.RequiresSpecialHandling,
		Notes:                   a.Notes,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}
