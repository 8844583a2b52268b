package repository

import "github.com/jhoicas/Despacho-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Customer, error)
	// ListAllByBranch devuelve el universo completo de clientes de la sucursal.
	ListAllByBranch(branchID string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
