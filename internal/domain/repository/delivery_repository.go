package repository

import "github.com/jhoicas/Despacho-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para Delivery (POD).
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	GetByBooking(bookingID string) (*entity.Delivery, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Delivery, error)
}
