package delivery

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type memBookingRepo struct {
	byID map[string]*entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byID: make(map[string]*entity.Booking)}
}

func (r *memBookingRepo) Create(b *entity.Booking) error { r.byID[b.ID] = b; return nil }
func (r *memBookingRepo) GetByID(id string) (*entity.Booking, error) { return r.byID[id], nil }

func (r *memBookingRepo) GetByConsignment(branchID, consignmentNo string) (*entity.Booking, error) {
	for _, b := range r.byID {
		if b.BranchID == branchID && b.ConsignmentNo == consignmentNo {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListByBranch(string, int, int) ([]*entity.Booking, error) {
	return nil, nil
}

func (r *memBookingRepo) UpdateStatus(id, status string) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *memBookingRepo) CountByArticle(string) (int64, error) { return 0, nil }

type memDeliveryRepo struct {
	byID     map[string]*entity.Delivery
	failNext bool
}

func newMemDeliveryRepo() *memDeliveryRepo {
	return &memDeliveryRepo{byID: make(map[string]*entity.Delivery)}
}

func (r *memDeliveryRepo) Create(d *entity.Delivery) error {
	if r.failNext {
		return errors.New("escritura fallida simulada")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *memDeliveryRepo) GetByID(id string) (*entity.Delivery, error) { return r.byID[id], nil }

func (r *memDeliveryRepo) GetByBooking(bookingID string) (*entity.Delivery, error) {
	for _, d := range r.byID {
		if d.BookingID == bookingID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDeliveryRepo) ListByBranch(string, int, int) ([]*entity.Delivery, error) {
	return nil, nil
}

type memArticleRepo struct {
	byID map[string]*entity.Article
}

func (r *memArticleRepo) Create(a *entity.Article) error { r.byID[a.ID] = a; return nil }
func (r *memArticleRepo) GetByID(id string) (*entity.Article, error) { return r.byID[id], nil }
func (r *memArticleRepo) GetByBranchAndName(string, string) (*entity.Article, error) {
	return nil, nil
}
func (r *memArticleRepo) Update(*entity.Article) error { return nil }
func (r *memArticleRepo) ListByBranch(string, int, int) ([]*entity.Article, error) {
	return nil, nil
}
func (r *memArticleRepo) ListAllByBranch(string) ([]*entity.Article, error) { return nil, nil }
func (r *memArticleRepo) Delete(string) error { return nil }

type memCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.byID[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) { return r.byID[id], nil }
func (r *memCustomerRepo) ListByBranch(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) ListAllByBranch(string) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(*entity.Customer) error { return nil }
func (r *memCustomerRepo) Delete(string) error { return nil }

type memBranchRepo struct {
	byID map[string]*entity.Branch
}

func (r *memBranchRepo) Create(b *entity.Branch) error { r.byID[b.ID] = b; return nil }
func (r *memBranchRepo) GetByID(id string) (*entity.Branch, error) { return r.byID[id], nil }
func (r *memBranchRepo) GetByCode(string) (*entity.Branch, error) { return nil, nil }
func (r *memBranchRepo) Update(*entity.Branch) error { return nil }
func (r *memBranchRepo) List(int, int) ([]*entity.Branch, error) { return nil, nil }

// fakeTxRunner ejecuta fn con los mismos repos en memoria. Si fn falla,
// revierte el estado de la guía (simulando el rollback).
type fakeTxRunner struct {
	bookings   *memBookingRepo
	deliveries *memDeliveryRepo
}

func (t *fakeTxRunner) WithinTx(_ context.Context, fn func(repos TxRepos) error) error {
	saved := make(map[string]string, len(t.bookings.byID))
	for id, b := range t.bookings.byID {
		saved[id] = b.Status
	}
	err := fn(TxRepos{Bookings: t.bookings, Deliveries: t.deliveries})
	if err != nil {
		for id, status := range saved {
			t.bookings.byID[id].Status = status
		}
	}
	return err
}

type fakeSealer struct {
	lastData ManifestData
}

func (s *fakeSealer) Seal(data ManifestData) (string, []byte, error) {
	s.lastData = data
	return "digest-de-prueba", []byte("<manifest/>"), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Armado
// ─────────────────────────────────────────────────────────────────────────────

const branchID = "b1"

func setupCapture(t *testing.T) (*CaptureUseCase, *memBookingRepo, *memDeliveryRepo, *fakeSealer) {
	t.Helper()
	bookings := newMemBookingRepo()
	deliveries := newMemDeliveryRepo()
	articles := &memArticleRepo{byID: map[string]*entity.Article{
		"a1": {ID: "a1", BranchID: branchID, Name: "Caja mediana", BaseRate: decimal.NewFromInt(100), MinQuantity: 1},
	}}
	customers := &memCustomerRepo{byID: map[string]*entity.Customer{
		"c1": {ID: "c1", BranchID: branchID, Name: "Logística Andina"},
	}}
	branches := &memBranchRepo{byID: map[string]*entity.Branch{
		branchID: {ID: branchID, Name: "Bogotá Centro", Code: "BOG-01"},
	}}
	bookings.byID["g1"] = &entity.Booking{
		ID:            "g1",
		BranchID:      branchID,
		ConsignmentNo: "CN-0001",
		CustomerID:    "c1",
		ArticleID:     "a1",
		Quantity:      2,
		AppliedRate:   decimal.NewFromInt(90),
		Status:        entity.BookingStatusInTransit,
	}
	sealer := &fakeSealer{}
	tx := &fakeTxRunner{bookings: bookings, deliveries: deliveries}
	uc := NewCaptureUseCase(bookings, deliveries, articles, customers, branches, tx, sealer)
	return uc, bookings, deliveries, sealer
}

func firmaPNG() string {
	return base64.StdEncoding.EncodeToString([]byte("\x89PNG-firma-de-prueba"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestCapture_RegistraPODYEntregaLaGuia(t *testing.T) {
	uc, bookings, deliveries, sealer := setupCapture(t)

	resp, err := uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName:     "Pedro Gómez",
		ReceiverDocument: "CC 1020304050",
		SignaturePNG:     firmaPNG(),
		Remarks:          "entregado en portería",
	})
	require.NoError(t, err)

	assert.Equal(t, "digest-de-prueba", resp.ManifestDigest)
	assert.Equal(t, entity.BookingStatusDelivered, bookings.byID["g1"].Status)

	stored, _ := deliveries.GetByBooking("g1")
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.SignaturePNG)

	// El manifiesto lleva los datos de la guía y el digest de la firma.
	assert.Equal(t, "CN-0001", sealer.lastData.ConsignmentNo)
	assert.Equal(t, "BOG-01", sealer.lastData.BranchCode)
	assert.Equal(t, "Logística Andina", sealer.lastData.CustomerName)
	assert.Len(t, sealer.lastData.SignatureSHA256, 64, "sha256 en hex")
}

func TestCapture_GuiaYaEntregadaRechazada(t *testing.T) {
	uc, bookings, _, _ := setupCapture(t)
	bookings.byID["g1"].Status = entity.BookingStatusDelivered

	_, err := uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: firmaPNG(),
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCapture_PODDuplicadoRechazado(t *testing.T) {
	uc, bookings, _, _ := setupCapture(t)
	_, err := uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: firmaPNG(),
	})
	require.NoError(t, err)
	// Forzar el estado para aislar la verificación de POD previo.
	bookings.byID["g1"].Status = entity.BookingStatusInTransit

	_, err = uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: firmaPNG(),
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCapture_FirmaInvalidaRechazada(t *testing.T) {
	uc, _, _, _ := setupCapture(t)

	_, err := uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: "esto-no-es-base64!!",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCapture_OtraSucursalNoVeLaGuia(t *testing.T) {
	uc, _, _, _ := setupCapture(t)

	_, err := uc.Capture(context.Background(), "b2", "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: firmaPNG(),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCapture_FalloEnTransaccionNoDejaEstadoParcial(t *testing.T) {
	uc, bookings, deliveries, _ := setupCapture(t)
	deliveries.failNext = true

	_, err := uc.Capture(context.Background(), branchID, "g1", dto.CapturePODRequest{
		ReceiverName: "Pedro",
		SignaturePNG: firmaPNG(),
	})

	require.Error(t, err)
	assert.Equal(t, entity.BookingStatusInTransit, bookings.byID["g1"].Status, "el estado de la guía se revierte")
	assert.Empty(t, deliveries.byID)
}
