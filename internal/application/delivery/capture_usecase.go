package delivery

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// CaptureUseCase registra la prueba de entrega de una guía: decodifica la
// firma, sella el manifiesto de evidencia y confirma entrega y POD en una
// misma transacción.
type CaptureUseCase struct {
	bookingRepo  repository.BookingRepository
	deliveryRepo repository.DeliveryRepository
	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	tx           TxRunner
	sealer       ManifestSealer
}

// NewCaptureUseCase construye el caso de uso.
func NewCaptureUseCase(
	bookingRepo repository.BookingRepository,
	deliveryRepo repository.DeliveryRepository,
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	tx TxRunner,
	sealer ManifestSealer,
) *CaptureUseCase {
	return &CaptureUseCase{
		bookingRepo:  bookingRepo,
		deliveryRepo: deliveryRepo,
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		tx:           tx,
		sealer:       sealer,
	}
}

// Capture registra el POD de una guía. Una guía ya entregada, o con POD
// previo, no admite otra captura.
func (uc *CaptureUseCase) Capture(ctx context.Context, branchID, bookingID string, in dto.CapturePODRequest) (*dto.DeliveryResponse, error) {
	booking, err := uc.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	if booking.Status == entity.BookingStatusDelivered {
		return nil, domain.ErrConflict
	}
	existing, err := uc.deliveryRepo.GetByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	signature, err := base64.StdEncoding.DecodeString(in.SignaturePNG)
	if err != nil || len(signature) == 0 {
		return nil, domain.ErrInvalidInput
	}

	article, err := uc.articleRepo.GetByID(booking.ArticleID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(booking.CustomerID)
	if err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if article == nil || customer == nil || branch == nil {
		return nil, domain.ErrNotFound
	}

	sigDigest := sha256.Sum256(signature)
	deliveredAt := time.Now()
	digest, _, err := uc.sealer.Seal(ManifestData{
		ConsignmentNo:    booking.ConsignmentNo,
		BranchCode:       branch.Code,
		CustomerName:     customer.Name,
		ArticleName:      article.Name,
		Quantity:         booking.Quantity,
		AppliedRate:      booking.AppliedRate,
		ReceiverName:     in.ReceiverName,
		ReceiverDocument: in.ReceiverDocument,
		SignatureSHA256:  hex.EncodeToString(sigDigest[:]),
		DeliveredAt:      deliveredAt,
	})
	if err != nil {
		return nil, err
	}

	record := &entity.Delivery{
		ID:               uuid.New().String(),
		BranchID:         branchID,
		BookingID:        booking.ID,
		ReceiverName:     in.ReceiverName,
		ReceiverDocument: in.ReceiverDocument,
		SignaturePNG:     signature,
		Remarks:          in.Remarks,
		ManifestDigest:   digest,
		DeliveredAt:      deliveredAt,
		CreatedAt:        deliveredAt,
	}

	// Estado de la guía y POD se confirman juntos o no se confirma nada.
	err = uc.tx.WithinTx(ctx, func(repos TxRepos) error {
		if err := repos.Bookings.UpdateStatus(booking.ID, entity.BookingStatusDelivered); err != nil {
			return err
		}
		return repos.Deliveries.Create(record)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking", booking.ID).
		Str("consignment", booking.ConsignmentNo).
		Str("digest", digest).
		Msg("prueba de entrega registrada")

	return toDeliveryResponse(record), nil
}

// GetByBooking devuelve el POD de una guía.
func (uc *CaptureUseCase) GetByBooking(branchID, bookingID string) (*dto.DeliveryResponse, error) {
	record, err := uc.deliveryRepo.GetByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(record), nil
}

// List devuelve una página de entregas de la sucursal.
func (uc *CaptureUseCase) List(branchID string, page dto.PageRequest) (*dto.DeliveryListResponse, error) {
	page.DefaultPage()
	records, err := uc.deliveryRepo.ListByBranch(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toDeliveryResponse(r))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:               d.ID,
		BookingID:        d.BookingID,
		ReceiverName:     d.ReceiverName,
		ReceiverDocument: d.ReceiverDocument,
		Remarks:          d.Remarks,
		ManifestDigest:   d.ManifestDigest,
		DeliveredAt:      d.DeliveredAt,
	}
}
