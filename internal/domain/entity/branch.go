package entity

import "time"

// Branch representa una sucursal de la operación logística. Todo el catálogo,
// los clientes y las guías están acotados a una sucursal.
type Branch struct {
	ID        string
	Name      string
	Code      string // código corto único (ej. "BOG-01")
	Address   string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
