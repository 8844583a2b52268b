package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una guía (booking).
const (
	BookingStatusBooked    = "booked"
	BookingStatusInTransit = "in_transit"
	BookingStatusDelivered = "delivered"
)

// Booking representa una guía de despacho: un artículo consignado por un cliente.
// AppliedRate es la tarifa efectiva al momento de la reserva (override del cliente o base).
type Booking struct {
	ID            string
	BranchID      string
	ConsignmentNo string // único por sucursal
	CustomerID    string
	ArticleID     string
	Quantity      int
	AppliedRate   decimal.Decimal
	Status        string // booked | in_transit | delivered
	BookedAt      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
