package entity

import "time"

// Delivery es la prueba de entrega (POD) de una guía: receptor, firma capturada
// y el digest del manifiesto de evidencia (XML canonicalizado + SHA-256).
type Delivery struct {
	ID               string
	BranchID         string
	BookingID        string
	ReceiverName     string
	ReceiverDocument string
	SignaturePNG     []byte // imagen de la firma capturada (PNG)
	Remarks          string
	ManifestDigest   string // hex SHA-256 del manifiesto C14N
	DeliveredAt      time.Time
	CreatedAt        time.Time
}
