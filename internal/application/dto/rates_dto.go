package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRateResponse salida de un override de tarifa.
type CustomerRateResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	ArticleID  string          `json:"article_id"`
	Rate       decimal.Decimal `json:"rate"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BulkConfigRequest configuración de una operación masiva tal como llega por
// HTTP. El use case la convierte en la variante de operación del dominio.
type BulkConfigRequest struct {
	Operation       string           `json:"operation" validate:"required,oneof=percentage fixed_amount set_rate copy_from"`
	Value           decimal.Decimal  `json:"value"`
	ApplyToBase     bool             `json:"apply_to_base"`
	SourceArticleID string           `json:"source_article_id"` // requerido sii operation=copy_from
	MinRate         *decimal.Decimal `json:"min_rate"`
	MaxRate         *decimal.Decimal `json:"max_rate"`
	RoundTo         *int32           `json:"round_to" validate:"omitempty,min=0,max=3"`
}

// ToggleRequest alterna un id en la selección de artículos o clientes.
type ToggleRequest struct {
	ID string `json:"id" validate:"required"`
}

// SelectionFiltersRequest filtros de búsqueda de la sesión masiva.
type SelectionFiltersRequest struct {
	ArticleQuery  string `json:"article_query"`
	RateFilter    string `json:"rate_filter" validate:"omitempty,oneof=all with_rates without_rates"`
	CustomerQuery string `json:"customer_query"`
}

// BulkSessionResponse estado observable de una sesión de cambio masivo.
type BulkSessionResponse struct {
	ID                string   `json:"id"`
	State             string   `json:"state"`
	SelectedArticles  []string `json:"selected_articles"`
	SelectedCustomers []string `json:"selected_customers"`
	FilteredArticles  []string `json:"filtered_articles"`
	FilteredCustomers []string `json:"filtered_customers"`
	Warnings          []string `json:"warnings,omitempty"`
}

// RateChangeResponse un cambio calculado, aún no persistido, del preview.
// Lleva todo lo necesario para la tabla de diff sin recalcular nada.
type RateChangeResponse struct {
	ArticleID     string           `json:"article_id"`
	ArticleName   string           `json:"article_name"`
	CustomerID    string           `json:"customer_id"`
	CustomerName  string           `json:"customer_name"`
	OldRate       *decimal.Decimal `json:"old_rate"` // nil = no existía override (alta)
	NewRate       decimal.Decimal  `json:"new_rate"`
	Operation     string           `json:"operation"`
	Value         decimal.Decimal  `json:"value"`
	Status        string           `json:"status"` // new | update
	AbsDelta      decimal.Decimal  `json:"abs_delta"`
	PctDelta      *decimal.Decimal `json:"pct_delta"` // nil si la referencia es cero
	SourceMissing bool             `json:"source_missing,omitempty"`
}

// BulkPreviewResponse resultado de previsualizar una operación masiva.
type BulkPreviewResponse struct {
	SessionID string               `json:"session_id"`
	Changes   []RateChangeResponse `json:"changes"`
	Creates   int                  `json:"creates"`
	Updates   int                  `json:"updates"`
	Warnings  int                  `json:"warnings"` // cambios con source_missing
}

// FailedChangeResponse un cambio cuya persistencia falló.
type FailedChangeResponse struct {
	ArticleID  string `json:"article_id"`
	CustomerID string `json:"customer_id"`
	Error      string `json:"error"`
}

// BulkApplyResponse resultado agregado de aplicar los cambios.
// Outcome: "success" (todo ok), "partial" (mezcla), "failed" (ninguno aplicó).
type BulkApplyResponse struct {
	SessionID    string                 `json:"session_id"`
	Outcome      string                 `json:"outcome"`
	SuccessCount int                    `json:"success_count"`
	ErrorCount   int                    `json:"error_count"`
	Failed       []FailedChangeResponse `json:"failed,omitempty"`
}
