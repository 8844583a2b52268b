package repository

import "github.com/jhoicas/Despacho-api/internal/domain/entity"

// BookingRepository define el puerto de persistencia para Booking (guías).
type BookingRepository interface {
	Create(booking *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	GetByConsignment(branchID, consignmentNo string) (*entity.Booking, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Booking, error)
	UpdateStatus(id, status string) error
	// CountByArticle cuenta guías que referencian un artículo; un artículo
	// referenciado no se puede eliminar del catálogo.
	CountByArticle(articleID string) (int64, error)
}
