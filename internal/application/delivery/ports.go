// Package delivery implementa guías de despacho y la prueba de entrega (POD):
// captura de firma, manifiesto de evidencia sellado y nota de entrega en PDF.
package delivery

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// TxRepos son los repositorios ligados a una misma transacción.
type TxRepos struct {
	Bookings   repository.BookingRepository
	Deliveries repository.DeliveryRepository
}

// TxRunner ejecuta fn dentro de una transacción: o todo se confirma o todo se
// revierte. La implementación vive en infrastructure/postgres.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos TxRepos) error) error
}

// ManifestData es el contenido del manifiesto de evidencia de una entrega.
type ManifestData struct {
	ConsignmentNo    string
	BranchCode       string
	CustomerName     string
	ArticleName      string
	Quantity         int
	AppliedRate      decimal.Decimal
	ReceiverName     string
	ReceiverDocument string
	SignatureSHA256  string // hex del PNG de la firma
	DeliveredAt      time.Time
}

// ManifestSealer construye el manifiesto XML, lo canonicaliza y devuelve su
// digest. El digest queda persistido con la entrega como evidencia verificable.
type ManifestSealer interface {
	Seal(data ManifestData) (digestHex string, manifestXML []byte, err error)
}

// DeliveryNoteData es el contenido de la nota de entrega en PDF.
type DeliveryNoteData struct {
	ConsignmentNo    string
	BranchName       string
	CustomerName     string
	ArticleName      string
	Quantity         int
	AppliedRate      decimal.Decimal
	ReceiverName     string
	ReceiverDocument string
	SignaturePNG     []byte
	ManifestDigest   string
	DeliveredAt      time.Time
}

// DeliveryNoteGenerator produce la nota de entrega en PDF. La implementación
// vive en infrastructure/pdf.
type DeliveryNoteGenerator interface {
	Generate(data DeliveryNoteData) ([]byte, error)
}
