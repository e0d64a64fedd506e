package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, booking_number, product_id, customer_name, customer_email, customer_phone,
	quantity, rental_type, start_date, end_date, duration_hours, duration_days,
	base_rate_cents, addon_total_cents, subtotal_cents, tax_cents, total_cents,
	status, payment_status, COALESCE(delivery_address, ''), COALESCE(pickup_location, ''), COALESCE(notes, ''),
	cancelled_on, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bookings (booking_number, product_id, customer_name, customer_email, customer_phone,
	            quantity, rental_type, start_date, end_date, duration_hours, duration_days,
	            base_rate_cents, addon_total_cents, subtotal_cents, tax_cents, total_cents,
	            status, payment_status, delivery_address, pickup_location, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query,
		b.BookingNumber, b.ProductID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Quantity, b.RentalType, b.StartDate, b.EndDate, b.DurationHours, b.DurationDays,
		b.BaseRateCents, b.AddonTotalCents, b.SubtotalCents, b.TaxCents, b.TotalCents,
		b.Status, b.PaymentStatus, b.DeliveryAddress, b.PickupLocation, b.Notes,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateBookingNumber
		}
		return err
	}

	for i := range b.Addons {
		a := &b.Addons[i]
		a.BookingID = b.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO booking_addons (booking_id, addon_id, name, price_cents, quantity) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			a.BookingID, a.AddonID, a.Name, a.PriceCents, a.Quantity).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	// A booking created in a holding status takes its reservation now, in
	// the same transaction, so the booking can never exist without it.
	if b.Status.HoldsInventory() {
		if err := reserveInventory(ctx, tx, b.ProductID, b.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) Transition(ctx context.Context, id int32, to domain.BookingStatus) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var from domain.BookingStatus
	var productID, quantity int32
	err = tx.QueryRowContext(ctx,
		`SELECT status, product_id, quantity FROM bookings WHERE id = $1 FOR UPDATE`, id,
	).Scan(&from, &productID, &quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	// Repeating a transition is a no-op, so cancelling an already-cancelled
	// booking never releases inventory twice.
	if from == to {
		tx.Rollback()
		return r.GetByID(ctx, id)
	}
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, to)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings
		 SET status = $2, updated_on = NOW(),
		     cancelled_on = CASE WHEN $2 = 'CANCELLED' THEN NOW() ELSE cancelled_on END
		 WHERE id = $1`, id, to)
	if err != nil {
		return nil, err
	}

	if domain.ReleasesInventory(from, to) {
		if err := releaseInventory(ctx, tx, productID, quantity); err != nil {
			// Rollback leaves the ledger exactly as it was before the attempt.
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *bookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_number = $1`
	return r.getOne(ctx, query, number)
}

func (r *bookingRepository) getOne(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := scanBooking(r.db.QueryRowContext(ctx, query, arg), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadAddons(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) loadAddons(ctx context.Context, b *domain.Booking) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, addon_id, name, price_cents, quantity FROM booking_addons WHERE booking_id = $1 ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.BookingAddon
		if err := rows.Scan(&a.ID, &a.BookingID, &a.AddonID, &a.Name, &a.PriceCents, &a.Quantity); err != nil {
			return err
		}
		b.Addons = append(b.Addons, a)
	}
	return rows.Err()
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $2, updated_on = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	countQuery := `SELECT count(*) FROM bookings`

	args := []any{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		countQuery += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = 'PENDING' AND payment_status = 'PENDING' AND created_on < $1`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) OverlappingQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	// Half-open overlap: a booking [s, e) overlaps [start, end) iff
	// s < end and e > start. Boundary handoffs do not double-count.
	query := `SELECT COALESCE(SUM(quantity), 0) FROM bookings
	          WHERE product_id = $1
	            AND status IN ('PENDING', 'CONFIRMED', 'REQUIRES_ACTION', 'IN_PROGRESS')
	            AND start_date < $3 AND end_date > $2`
	var total int32
	err := r.db.QueryRowContext(ctx, query, productID, start, end).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.BookingNumber, &b.ProductID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Quantity, &b.RentalType, &b.StartDate, &b.EndDate, &b.DurationHours, &b.DurationDays,
		&b.BaseRateCents, &b.AddonTotalCents, &b.SubtotalCents, &b.TaxCents, &b.TotalCents,
		&b.Status, &b.PaymentStatus, &b.DeliveryAddress, &b.PickupLocation, &b.Notes,
		&b.CancelledOn, &b.CreatedOn, &b.UpdatedOn)
}
