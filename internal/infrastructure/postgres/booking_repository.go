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

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación del puerto BookingRepository sobre PostgreSQL.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, branch_id, consignment_no, customer_id, article_id, quantity, applied_rate, status, booked_at, created_at, updated_at`

// Create persiste una nueva guía.
func (r *BookingRepo) Create(booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		booking.ID, booking.BranchID, booking.ConsignmentNo, booking.CustomerID, booking.ArticleID,
		booking.Quantity, booking.AppliedRate, booking.Status, booking.BookedAt,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene una guía por ID.
func (r *BookingRepo) GetByID(id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByConsignment obtiene una guía por sucursal y número de consignación.
func (r *BookingRepo) GetByConsignment(branchID, consignmentNo string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE branch_id = $1 AND consignment_no = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, consignmentNo))
}

// ListByBranch lista guías por sucursal, más recientes primero.
func (r *BookingRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE branch_id = $1 ORDER BY booked_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.BranchID, &b.ConsignmentNo, &b.CustomerID, &b.ArticleID,
			&b.Quantity, &b.AppliedRate, &b.Status, &b.BookedAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una guía.
func (r *BookingRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByArticle cuenta guías que referencian un artículo.
func (r *BookingRepo) CountByArticle(articleID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM bookings WHERE article_id = $1`, articleID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by article: %w", err)
	}
	return count, nil
}

func (r *BookingRepo) scanOne(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(&b.ID, &b.BranchID, &b.ConsignmentNo, &b.CustomerID, &b.ArticleID,
		&b.Quantity, &b.AppliedRate, &b.Status, &b.BookedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}
