package repository

import "github.com/jhoicas/Despacho-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
// La implementación vive en infrastructure.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	GetByCode(code string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	List(limit, offset int) ([]*entity.Branch, error)
}
