package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// BranchUseCase maneja el alta y consulta de sucursales.
type BranchUseCase struct {
	branchRepo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branchRepo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo}
}

// Create da de alta una sucursal. El código corto es único global.
func (uc *BranchUseCase) Create(in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	existing, err := uc.branchRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Address:   in.Address,
		Phone:     in.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID devuelve una sucursal.
func (uc *BranchUseCase) GetByID(id string) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return toBranchResponse(branch), nil
}

// List devuelve una página de sucursales.
func (uc *BranchUseCase) List(page dto.PageRequest) ([]dto.BranchResponse, error) {
	page.DefaultPage()
	branches, err := uc.branchRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, *toBranchResponse(b))
	}
	return out, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Code:      b.Code,
		Address:   b.Address,
		Phone:     b.Phone,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}
