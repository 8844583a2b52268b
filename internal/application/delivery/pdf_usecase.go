package delivery

import (
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// NoteUseCase genera la nota de entrega en PDF de un POD registrado.
type NoteUseCase struct {
	deliveryRepo repository.DeliveryRepository
	bookingRepo  repository.BookingRepository
	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	generator    DeliveryNoteGenerator
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(
	deliveryRepo repository.DeliveryRepository,
	bookingRepo repository.BookingRepository,
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	generator DeliveryNoteGenerator,
) *NoteUseCase {
	return &NoteUseCase{
		deliveryRepo: deliveryRepo,
		bookingRepo:  bookingRepo,
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		generator:    generator,
	}
}

// Generate arma y devuelve el PDF de la nota de entrega.
func (uc *NoteUseCase) Generate(branchID, deliveryID string) ([]byte, error) {
	record, err := uc.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	booking, err := uc.bookingRepo.GetByID(record.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
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

	return uc.generator.Generate(DeliveryNoteData{
		ConsignmentNo:    booking.ConsignmentNo,
		BranchName:       branch.Name,
		CustomerName:     customer.Name,
		ArticleName:      article.Name,
		Quantity:         booking.Quantity,
		AppliedRate:      booking.AppliedRate,
		ReceiverName:     record.ReceiverName,
		ReceiverDocument: record.ReceiverDocument,
		SignaturePNG:     record.SignaturePNG,
		ManifestDigest:   record.ManifestDigest,
		DeliveredAt:      record.DeliveredAt,
	})
}
