package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

var _ repository.ArticleDraftRepository = (*ArticleDraftRepo)(nil)

// ArticleDraftRepo guarda el borrador del formulario de artículo por
// (sucursal, usuario). A lo sumo un borrador por clave.
type ArticleDraftRepo struct {
	q Querier
}

// NewArticleDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleDraftRepository(q Querier) *ArticleDraftRepo {
	return &ArticleDraftRepo{q: q}
}

// Get devuelve el borrador o nil si no hay.
func (r *ArticleDraftRepo) Get(branchID, userID string) ([]byte, error) {
	var payload []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT payload FROM article_drafts WHERE branch_id = $1 AND user_id = $2`,
		branchID, userID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return payload, nil
}

// Save crea o reemplaza el borrador de la clave.
func (r *ArticleDraftRepo) Save(branchID, userID string, payload []byte) error {
	query := `
		INSERT INTO article_drafts (branch_id, user_id, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (branch_id, user_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, branchID, userID, payload); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Clear elimina el borrador de la clave. Sin borrador no es error.
func (r *ArticleDraftRepo) Clear(branchID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM article_drafts WHERE branch_id = $1 AND user_id = $2`, branchID, userID)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
