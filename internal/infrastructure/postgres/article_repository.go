package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, branch_id, name, description, base_rate, hsn_code, tax_rate, unit_of_measure, min_quantity, is_fragile, requires_special_handling, notes, created_at, updated_at`

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.BranchID, article.Name, article.Description, article.BaseRate,
		article.HSNCode, article.TaxRate, article.UnitOfMeasure, article.MinQuantity,
		article.IsFragile, article.RequiresSpecialHandling, article.Notes,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByBranchAndName obtiene un artículo por sucursal y nombre.
func (r *ArticleRepo) GetByBranchAndName(branchID, name string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE branch_id = $1 AND name = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, name))
}

// Update actualiza un artículo existente.
func (r *ArticleRepo) Update(article *entity.Article) error {
	query := `
		UPDATE articles SET name = $2, description = $3, base_rate = $4, hsn_code = $5, tax_rate = $6,
			unit_of_measure = $7, min_quantity = $8, is_fragile = $9, requires_special_handling = $10,
			notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.Name, article.Description, article.BaseRate, article.HSNCode,
		article.TaxRate, article.UnitOfMeasure, article.MinQuantity, article.IsFragile,
		article.RequiresSpecialHandling, article.Notes, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// ListByBranch lista artículos por sucursal con paginación.
func (r *ArticleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE branch_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListAllByBranch lista el universo completo de artículos de la sucursal.
func (r *ArticleRepo) ListAllByBranch(branchID string) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE branch_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list all articles: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina un artículo por ID.
func (r *ArticleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) scanOne(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.BranchID, &a.Name, &a.Description, &a.BaseRate, &a.HSNCode, &a.TaxRate,
		&a.UnitOfMeasure, &a.MinQuantity, &a.IsFragile, &a.RequiresSpecialHandling, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepo) scanAll(rows pgx.Rows) ([]*entity.Article, error) {
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.BranchID, &a.Name, &a.Description, &a.BaseRate, &a.HSNCode,
			&a.TaxRate, &a.UnitOfMeasure, &a.MinQuantity, &a.IsFragile, &a.RequiresSpecialHandling,
			&a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
