package repository

import "github.com/jhoicas/Despacho-api/internal/domain/entity"

// ArticleRepository define el puerto de persistencia para Article (DIP).
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	GetByBranchAndName(branchID, name string) (*entity.Article, error)
	Update(article *entity.Article) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Article, error)
	// ListAllByBranch devuelve el universo completo de artículos de la sucursal,
	// sin paginar. El motor de tarifas trabaja sobre el universo completo.
	ListAllByBranch(branchID string) ([]*entity.Article, error)
	Delete(id string) error
}

// ArticleDraftRepository es el almacén explícito de borradores del formulario
// de artículo, clave (branch, user). Reemplaza el autosave ambiental del
// navegador por una capacidad inyectable y testeable.
type ArticleDraftRepository interface {
	Get(branchID, userID string) ([]byte, error) // nil si no hay borrador
	Save(branchID, userID string, payload []byte) error
	Clear(branchID, userID string) error
}
