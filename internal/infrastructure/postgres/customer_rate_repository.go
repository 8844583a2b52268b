package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

var _ repository.CustomerRateRepository = (*CustomerRateRepo)(nil)

// CustomerRateRepo implementación del puerto CustomerRateRepository sobre
// PostgreSQL. La tabla tiene constraint único sobre (customer_id, article_id):
// cero o un override por par.
type CustomerRateRepo struct {
	q Querier
}

// NewCustomerRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRateRepository(q Querier) *CustomerRateRepo {
	return &CustomerRateRepo{q: q}
}

const rateColumns = `id, branch_id, customer_id, article_id, rate, created_at, updated_at`

// ListByArticle devuelve los overrides vigentes de un artículo.
func (r *CustomerRateRepo) ListByArticle(articleID string) ([]*entity.CustomerRate, error) {
	query := `SELECT ` + rateColumns + ` FROM customer_rates WHERE article_id = $1`
	rows, err := r.q.Query(context.Background(), query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerRate
	for rows.Next() {
		var cr entity.CustomerRate
		if err := rows.Scan(&cr.ID, &cr.BranchID, &cr.CustomerID, &cr.ArticleID, &cr.Rate,
			&cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		list = append(list, &cr)
	}
	return list, rows.Err()
}

// GetByCustomerAndArticle devuelve el override del par, o nil si no existe.
func (r *CustomerRateRepo) GetByCustomerAndArticle(customerID, articleID string) (*entity.CustomerRate, error) {
	var cr entity.CustomerRate
	err := r.q.QueryRow(context.Background(),
		`SELECT `+rateColumns+` FROM customer_rates WHERE customer_id = $1 AND article_id = $2`,
		customerID, articleID,
	).Scan(&cr.ID, &cr.BranchID, &cr.CustomerID, &cr.ArticleID, &cr.Rate, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate: %w", err)
	}
	return &cr, nil
}

// Upsert crea el override si no existe o actualiza su tarifa si existe.
func (r *CustomerRateRepo) Upsert(branchID, customerID, articleID string, rate decimal.Decimal) error {
	query := `
		INSERT INTO customer_rates (id, branch_id, customer_id, article_id, rate, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, now(), now())
		ON CONFLICT (customer_id, article_id) DO UPDATE SET rate = EXCLUDED.rate, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, branchID, customerID, articleID, rate); err != nil {
		return fmt.Errorf("upsert rate: %w", err)
	}
	return nil
}

// OverriddenArticleIDs devuelve los ids de artículos de la sucursal con al
// menos un override.
func (r *CustomerRateRepo) OverriddenArticleIDs(branchID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT article_id FROM customer_rates WHERE branch_id = $1`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list overridden articles: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountOverriddenArticles cuenta artículos de la sucursal con al menos un override.
func (r *CustomerRateRepo) CountOverriddenArticles(branchID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(DISTINCT article_id) FROM customer_rates WHERE branch_id = $1`, branchID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overridden articles: %w", err)
	}
	return count, nil
}
