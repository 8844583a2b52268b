package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo.
type CreateArticleRequest struct {
	Name                    string          `json:"name" validate:"required,min=1,max=200"`
	Description             string          `json:"description"`
	BaseRate                decimal.Decimal `json:"base_rate"`
	HSNCode                 string          `json:"hsn_code"`
	TaxRate                 decimal.Decimal `json:"tax_rate"`
	UnitOfMeasure           string          `json:"unit_of_measure" validate:"required"`
	MinQuantity             int             `json:"min_quantity"`
	IsFragile               bool            `json:"is_fragile"`
	RequiresSpecialHandling bool            `json:"requires_special_handling"`
	Notes                   string          `json:"notes"`
}

// UpdateArticleRequest entrada para actualizar un artículo (campos opcionales).
type UpdateArticleRequest struct {
	Name                    *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description             *string          `json:"description"`
	BaseRate                *decimal.Decimal `json:"base_rate"`
	HSNCode                 *string          `json:"hsn_code"`
	TaxRate                 *decimal.Decimal `json:"tax_rate"`
	UnitOfMeasure           *string          `json:"unit_of_measure"`
	MinQuantity             *int             `json:"min_quantity"`
	IsFragile               *bool            `json:"is_fragile"`
	RequiresSpecialHandling *bool            `json:"requires_special_handling"`
	Notes                   *string          `json:"notes"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID                      string          `json:"id"`
	BranchID                string          `json:"branch_id"`
	Name                    string          `json:"name"`
	Description             string          `json:"description"`
	BaseRate                decimal.Decimal `json:"base_rate"`
	HSNCode                 string          `json:"hsn_code"`
	TaxRate                 decimal.Decimal `json:"tax_rate"`
	UnitOfMeasure           string          `json:"unit_of_measure"`
	MinQuantity             int             `json:"min_quantity"`
	IsFragile               bool            `json:"is_fragile"`
	RequiresSpecialHandling bool            `json:"requires_special_handling"`
	Notes                   string          `json:"notes"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ArticleDraftResponse borrador guardado del formulario de artículo.
// Payload es el contenido del formulario tal como lo envió el cliente.
type ArticleDraftResponse struct {
	Payload json.RawMessage `json:"payload"`
}
