package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, branch_id, booking_id, receiver_name, receiver_document, signature_png, remarks, manifest_digest, delivered_at, created_at`

// Create persiste una prueba de entrega. El constraint único sobre booking_id
// garantiza a lo sumo un POD por guía.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.BranchID, delivery.BookingID, delivery.ReceiverName,
		delivery.ReceiverDocument, delivery.SignaturePNG, delivery.Remarks,
		delivery.ManifestDigest, delivery.DeliveredAt, delivery.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByBooking obtiene la entrega de una guía, o nil si no hay.
func (r *DeliveryRepo) GetByBooking(bookingID string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE booking_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, bookingID))
}

// ListByBranch lista entregas por sucursal, más recientes primero.
func (r *DeliveryRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE branch_id = $1 ORDER BY delivered_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.BranchID, &d.BookingID, &d.ReceiverName, &d.ReceiverDocument,
			&d.SignaturePNG, &d.Remarks, &d.ManifestDigest, &d.DeliveredAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DeliveryRepo) scanOne(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(&d.ID, &d.BranchID, &d.BookingID, &d.ReceiverName, &d.ReceiverDocument,
		&d.SignaturePNG, &d.Remarks, &d.ManifestDigest, &d.DeliveredAt, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}
