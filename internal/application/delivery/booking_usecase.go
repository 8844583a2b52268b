package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

// BookingUseCase maneja el alta y consulta de guías.
type BookingUseCase struct {
	bookingRepo  repository.BookingRepository
	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	rateRepo     repository.CustomerRateRepository
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	rateRepo repository.CustomerRateRepository,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo:  bookingRepo,
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
	}
}

// Create registra una guía. La tarifa aplicada se congela al momento de la
// reserva: override del cliente si existe, tarifa base si no. Cambios masivos
// posteriores no alteran guías ya registradas.
func (uc *BookingUseCase) Create(branchID string, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	article, err := uc.articleRepo.GetByID(in.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	if in.Quantity < article.MinQuantity {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.bookingRepo.GetByConsignment(branchID, in.ConsignmentNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	appliedRate := article.BaseRate
	override, err := uc.rateRepo.GetByCustomerAndArticle(in.CustomerID, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		appliedRate = override.Rate
	}

	now := time.Now()
	booking := &entity.Booking{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		ConsignmentNo: in.ConsignmentNo,
		CustomerID:    in.CustomerID,
		ArticleID:     in.ArticleID,
		Quantity:      in.Quantity,
		AppliedRate:   appliedRate,
		Status:        entity.BookingStatusBooked,
		BookedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.bookingRepo.Create(booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

// GetByID devuelve una guía de la sucursal.
func (uc *BookingUseCase) GetByID(branchID, id string) (*dto.BookingResponse, error) {
	booking, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	return toBookingResponse(booking), nil
}

// List devuelve una página de guías de la sucursal.
func (uc *BookingUseCase) List(branchID string, page dto.PageRequest) (*dto.BookingListResponse, error) {
	page.DefaultPage()
	bookings, err := uc.bookingRepo.ListByBranch(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *toBookingResponse(b))
	}
	return &dto.BookingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MarkInTransit pasa una guía de booked a in_transit. El paso a delivered solo
// ocurre vía captura de POD.
func (uc *BookingUseCase) MarkInTransit(branchID, id string) (*dto.BookingResponse, error) {
	booking, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.BranchID != branchID {
		return nil, domain.ErrNotFound
	}
	if booking.Status != entity.BookingStatusBooked {
		return nil, domain.ErrConflict
	}
	if err := uc.bookingRepo.UpdateStatus(id, entity.BookingStatusInTransit); err != nil {
		return nil, err
	}
	booking.Status = entity.BookingStatusInTransit
	return toBookingResponse(booking), nil
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:            b.ID,
		BranchID:      b.BranchID,
		ConsignmentNo: b.ConsignmentNo,
		CustomerID:    b.CustomerID,
		ArticleID:     b.ArticleID,
		Quantity:      b.Quantity,
		AppliedRate:   b.AppliedRate,
		Status:        b.Status,
		BookedAt:      b.BookedAt,
	}
}
