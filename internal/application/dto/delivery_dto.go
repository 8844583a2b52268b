package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest entrada para crear una guía.
type CreateBookingRequest struct {
	ConsignmentNo string `json:"consignment_no" validate:"required,min=1,max=50"`
	CustomerID    string `json:"customer_id" validate:"required,uuid"`
	ArticleID     string `json:"article_id" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
}

// BookingResponse salida de una guía.
type BookingResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	ConsignmentNo string          `json:"consignment_no"`
	CustomerID    string          `json:"customer_id"`
	ArticleID     string          `json:"article_id"`
	Quantity      int             `json:"quantity"`
	AppliedRate   decimal.Decimal `json:"applied_rate"`
	Status        string          `json:"status"`
	BookedAt      time.Time       `json:"booked_at"`
}

// BookingListResponse lista paginada de guías.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CapturePODRequest entrada para registrar la prueba de entrega de una guía.
// SignaturePNG llega en base64 desde el asistente de captura de firma.
type CapturePODRequest struct {
	ReceiverName     string `json:"receiver_name" validate:"required,min=1,max=200"`
	ReceiverDocument string `json:"receiver_document"`
	SignaturePNG     string `json:"signature_png" validate:"required"` // base64
	Remarks          string `json:"remarks"`
}

// DeliveryResponse salida de una prueba de entrega.
type DeliveryResponse struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	ReceiverName     string    `json:"receiver_name"`
	ReceiverDocument string    `json:"receiver_document"`
	Remarks          string    `json:"remarks"`
	ManifestDigest   string    `json:"manifest_digest"`
	DeliveredAt      time.Time `json:"delivered_at"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
