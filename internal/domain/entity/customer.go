package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeIndividual = "individual"
	CustomerTypeCorporate  = "corporate"
)

// Customer representa un cliente de la sucursal. De solo lectura para el motor
// de tarifas; el CRUD existe para el back office.
type Customer struct {
	ID        string
	BranchID  string
	Name      string
	Type      string // individual | corporate
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
