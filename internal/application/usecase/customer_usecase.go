package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// CustomerUseCase maneja el CRUD de clientes de la sucursal.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create da de alta un cliente.
func (uc *CustomerUseCase) Create(branchID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Type != entity.CustomerTypeIndividual && in.Type != entity.CustomerTypeCorporate {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		Name:      in.Name,
		Type:      in.Type,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un cliente de la sucursal.
func (uc *CustomerUseCase) GetByID(branchID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update modifica los campos presentes en el request.
func (uc *CustomerUseCase) Update(branchID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Type != nil {
		if *in.Type != entity.CustomerTypeIndividual && *in.Type != entity.CustomerTypeCorporate {
			return nil, domain.ErrInvalidInput
		}
		customer.Type = *in.Type
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List devuelve una página de clientes de la sucursal.
func (uc *CustomerUseCase) List(branchID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByBranch(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(branchID, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil || customer.BranchID != branchID {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Type:      c.Type,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
