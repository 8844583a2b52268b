package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// CustomerRateRepository define el puerto de persistencia para CustomerRate.
// Cero o un override por par (customer, article); Upsert crea o actualiza.
type CustomerRateRepository interface {
	ListByArticle(articleID string) ([]*entity.CustomerRate, error)
	GetByCustomerAndArticle(customerID, articleID string) (*entity.CustomerRate, error)
	// Upsert crea el override si no existe o actualiza su tarifa si existe.
	// Es la única escritura que emite el orquestador de cambios masivos.
	Upsert(branchID, customerID, articleID string, rate decimal.Decimal) error
	// OverriddenArticleIDs devuelve los ids de artículos de la sucursal con al
	// menos un override (alimenta el filtro categórico de la selección).
	OverriddenArticleIDs(branchID string) ([]string, error)
	// CountOverriddenArticles cuenta artículos de la sucursal con al menos un override.
	CountOverriddenArticles(branchID string) (int64, error)
}
