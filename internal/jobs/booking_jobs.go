package jobs

import (
	"context"
	"time"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
)

// ExpireStaleBookings cancels PENDING bookings whose payment never arrived
// within the configured expiry window. Cancelling through the booking service
// keeps the behavior identical to a staff cancellation: the reservation is
// released in the same transaction and the customer is emailed.
func (jr *JobRunner) ExpireStaleBookings() {
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.PendingExpiryHours) * time.Hour)

		stale, err := jr.store.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending bookings", "error", err)
			return
		}

		expired := 0
		for _, b := range stale {
			if _, err := jr.services.Booking.Transition(ctx, b.ID, domain.BookingStatusCancelled, "housekeeping"); err != nil {
				logger.Error("Failed to expire stale booking",
					"booking_number", b.BookingNumber, "error", err)
				continue
			}
			expired++
			logger.Debug("Expired stale booking",
				"booking_number", b.BookingNumber,
				"created_on", b.CreatedOn.Format(time.RFC3339))
		}

		logger.Info("Expired stale pending bookings", "count", expired, "candidates", len(stale))
	})
}

// ReconcileReservations compares each product's reserved_quantity against the
// quantity held by its non-terminal bookings. A mismatch means a release or
// reserve was lost somewhere and needs a human to look at it.
func (jr *JobRunner) ReconcileReservations() {
	jr.runWithRecovery("ReconcileReservations", func() {
		ctx := context.Background()

		query := `
			SELECT i.product_id,
			       i.reserved_quantity,
			       COALESCE(SUM(b.quantity), 0) AS booked_quantity
			FROM inventory i
			LEFT JOIN bookings b
			  ON b.product_id = i.product_id
			 AND b.status IN ('PENDING', 'CONFIRMED', 'REQUIRES_ACTION', 'IN_PROGRESS')
			GROUP BY i.product_id, i.reserved_quantity
			HAVING i.reserved_quantity != COALESCE(SUM(b.quantity), 0)
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to run reservation reconciliation", "error", err)
			return
		}
		defer rows.Close()

		discrepancies := 0
		for rows.Next() {
			var productID, reserved, booked int32
			if err := rows.Scan(&productID, &reserved, &booked); err != nil {
				logger.Error("Failed to scan reconciliation row", "error", err)
				continue
			}
			discrepancies++
			logger.Critical("Reservation ledger out of sync with bookings",
				"product_id", productID,
				"reserved_quantity", reserved,
				"booked_quantity", booked)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating reconciliation rows", "error", err)
			return
		}

		if discrepancies == 0 {
			logger.Info("Reservation ledger reconciled cleanly")
		} else {
			logger.Warn("Reservation reconciliation found discrepancies", "count", discrepancies)
		}
	})
}
