// Package export arma la hoja de tarifas de una sucursal para intercambio con
// sistemas externos (XML y CSV).
package export

import (
	"time"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// RateSheet es el contenido exportable: el catálogo de la sucursal con sus
// overrides por cliente resueltos a nombre.
type RateSheet struct {
	BranchCode  string
	BranchName  string
	GeneratedAt time.Time
	Articles    []RateSheetArticle
}

// RateSheetArticle un artículo con sus tarifas por cliente.
type RateSheetArticle struct {
	Article   *entity.Article
	Overrides []RateSheetOverride
}

// RateSheetOverride un override resuelto a nombre de cliente.
type RateSheetOverride struct {
	CustomerID   string
	CustomerName string
	Rate         string // decimal ya formateado
}

// Encoder serializa una hoja de tarifas. La implementación vive en
// infrastructure/xmlexport.
type Encoder interface {
	XML(sheet RateSheet) ([]byte, error)
	CSV(sheet RateSheet) ([]byte, error)
}

// UseCase arma y serializa la hoja de tarifas.
type UseCase struct {
	branchRepo   repository.BranchRepository
	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	rateRepo     repository.CustomerRateRepository
	encoder      Encoder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	branchRepo repository.BranchRepository,
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	rateRepo repository.CustomerRateRepository,
	encoder Encoder,
) *UseCase {
	return &UseCase{
		branchRepo:   branchRepo,
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
		encoder:      encoder,
	}
}

// RateSheetXML devuelve la hoja de tarifas de la sucursal en XML.
func (uc *UseCase) RateSheetXML(branchID string) ([]byte, error) {
	sheet, err := uc.buildSheet(branchID)
	if err != nil {
		return nil, err
	}
	return uc.encoder.XML(*sheet)
}

// RateSheetCSV devuelve la hoja de tarifas de la sucursal en CSV.
func (uc *UseCase) RateSheetCSV(branchID string) ([]byte, error) {
	sheet, err := uc.buildSheet(branchID)
	if err != nil {
		return nil, err
	}
	return uc.encoder.CSV(*sheet)
}

// buildSheet arma la hoja: catálogo completo más overrides con nombre de
// cliente resuelto.
func (uc *UseCase) buildSheet(branchID string) (*RateSheet, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	articles, err := uc.articleRepo.ListAllByBranch(branchID)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customerRepo.ListAllByBranch(branchID)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(customers))
	for _, c := range customers {
		nameByID[c.ID] = c.Name
	}

	sheet := &RateSheet{
		BranchCode:  branch.Code,
		BranchName:  branch.Name,
		GeneratedAt: time.Now(),
		Articles:    make([]RateSheetArticle, 0, len(articles)),
	}
	for _, a := range articles {
		overrides, err := uc.rateRepo.ListByArticle(a.ID)
		if err != nil {
			return nil, err
		}
		item := RateSheetArticle{Article: a}
		for _, o := range overrides {
			item.Overrides = append(item.Overrides, RateSheetOverride{
				CustomerID:   o.CustomerID,
				CustomerName: nameByID[o.CustomerID],
				Rate:         o.Rate.String(),
			})
		}
		sheet.Articles = append(sheet.Articles, item)
	}
	return sheet, nil
}
