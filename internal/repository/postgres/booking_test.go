package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"golfcart-rental-backend/internal/domain"
)

var bookingColumnNames = []string{
	"id", "booking_number", "product_id", "customer_name", "customer_email", "customer_phone",
	"quantity", "rental_type", "start_date", "end_date", "duration_hours", "duration_days",
	"base_rate_cents", "addon_total_cents", "subtotal_cents", "tax_cents", "total_cents",
	"status", "payment_status", "delivery_address", "pickup_location", "notes",
	"cancelled_on", "created_on", "updated_on",
}

func bookingRow(id int32, status domain.BookingStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingColumnNames).
		AddRow(id, "GC-20260310-A1B2C3", 1, "Jordan Lee", "jordan@test.com", "",
			2, "DAILY", now, now.Add(48*time.Hour), 0, 2,
			30000, 0, 30000, 4500, 34500,
			string(status), "PENDING", "", "", "",
			nil, now, now)
}

func expectGetByID(mock sqlmock.Sqlmock, id int32, status domain.BookingStatus) {
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(bookingRow(id, status))
	mock.ExpectQuery("SELECT (.+) FROM booking_addons WHERE booking_id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "addon_id", "name", "price_cents", "quantity"}))
}

func newBooking() *domain.Booking {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		BookingNumber: "GC-20260310-A1B2C3",
		ProductID:     1,
		CustomerName:  "Jordan Lee",
		CustomerEmail: "jordan@test.com",
		Quantity:      2,
		RentalType:    domain.RentalTypeDaily,
		StartDate:     start,
		EndDate:       start.Add(48 * time.Hour),
		DurationDays:  2,
		BaseRateCents: 30000,
		SubtotalCents: 30000,
		TaxCents:      4500,
		TotalCents:    34500,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func TestBookingRepository_CreateWithReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(1, time.Now(), time.Now()))
		mock.ExpectExec("UPDATE inventory").
			WithArgs(b.ProductID, b.Quantity).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithReservation(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), b.ID)
	})

	t.Run("InsufficientInventoryRollsBack", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(2, time.Now(), time.Now()))
		mock.ExpectExec("UPDATE inventory").
			WithArgs(b.ProductID, b.Quantity).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT true FROM inventory WHERE product_id = \\$1").
			WithArgs(b.ProductID).
			WillReturnRows(sqlmock.NewRows([]string{"true"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.CreateWithReservation(ctx, b)
		assert.ErrorIs(t, err, domain.ErrAvailabilityConflict)
	})

	t.Run("DuplicateBookingNumber", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateWithReservation(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDuplicateBookingNumber)
	})

	t.Run("InsertsAddonSnapshots", func(t *testing.T) {
		b := newBooking()
		b.Addons = []domain.BookingAddon{{AddonID: 7, Name: "Cooler", PriceCents: 1500, Quantity: 2}}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(3, time.Now(), time.Now()))
		mock.ExpectQuery("INSERT INTO booking_addons").
			WithArgs(int32(3), int32(7), "Cooler", int64(1500), int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectExec("UPDATE inventory").
			WithArgs(b.ProductID, b.Quantity).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithReservation(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), b.Addons[0].BookingID)
		assert.Equal(t, int32(11), b.Addons[0].ID)
	})
}

func TestBookingRepository_Transition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("CancelReleasesInventory", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, product_id, quantity FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "product_id", "quantity"}).AddRow("PENDING", 1, 2))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(int32(1), domain.BookingStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(1), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetByID(mock, 1, domain.BookingStatusCancelled)

		booking, err := repo.Transition(ctx, 1, domain.BookingStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	})

	t.Run("ConfirmKeepsReservation", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, product_id, quantity FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "product_id", "quantity"}).AddRow("PENDING", 1, 2))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(int32(1), domain.BookingStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetByID(mock, 1, domain.BookingStatusConfirmed)

		booking, err := repo.Transition(ctx, 1, domain.BookingStatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	})

	t.Run("RepeatCancelIsNoOp", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, product_id, quantity FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "product_id", "quantity"}).AddRow("CANCELLED", 1, 2))
		mock.ExpectRollback()
		expectGetByID(mock, 1, domain.BookingStatusCancelled)

		booking, err := repo.Transition(ctx, 1, domain.BookingStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, product_id, quantity FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "product_id", "quantity"}).AddRow("COMPLETED", 1, 2))
		mock.ExpectRollback()

		booking, err := repo.Transition(ctx, 1, domain.BookingStatusCancelled)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, product_id, quantity FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "product_id", "quantity"}))
		mock.ExpectRollback()

		booking, err := repo.Transition(ctx, 9, domain.BookingStatusCancelled)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestBookingRepository_UpdatePaymentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET payment_status").
			WithArgs(int32(1), domain.PaymentStatusPaid).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePaymentStatus(ctx, 1, domain.PaymentStatusPaid)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET payment_status").
			WithArgs(int32(9), domain.PaymentStatusPaid).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePaymentStatus(ctx, 9, domain.PaymentStatusPaid)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestBookingRepository_OverlappingQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM bookings").
		WithArgs(int32(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5))

	total, err := repo.OverlappingQuantity(ctx, 1, start, end)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), total)
}
