package repository

import (
	"context"
	"time"

	"golfcart-rental-backend/internal/domain"
)

type BookingRepository interface {
	// CreateWithReservation inserts the booking and, when its status holds
	// inventory, reserves the quantity in the same transaction. The
	// reservation is a conditional atomic update: it fails with
	// ErrAvailabilityConflict when available_quantity is too low and with
	// ErrInventoryNotFound when the ledger row is missing, and in either
	// case the booking insert is rolled back.
	CreateWithReservation(ctx context.Context, b *domain.Booking) error

	// Transition moves the booking to a new status, applying the ledger
	// delta the state machine mandates inside the same transaction.
	// Transitioning to the current status is a no-op returning the booking
	// unchanged, which makes cancellation idempotent.
	Transition(ctx context.Context, id int32, to domain.BookingStatus) (*domain.Booking, error)

	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) error
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Booking, error)

	// OverlappingQuantity sums the quantity of non-terminal bookings whose
	// [start_date, end_date) range overlaps the given half-open window.
	OverlappingQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error)
}

type InventoryRepository interface {
	Get(ctx context.Context, productID int32) (*domain.Inventory, error)
	Create(ctx context.Context, productID, totalQuantity int32) (*domain.Inventory, error)

	// Adjust sets total and maintenance counts and re-derives available as
	// total - reserved - maintenance. It never accepts available directly
	// and rejects adjustments that would make available negative.
	Adjust(ctx context.Context, productID, totalQuantity, maintenanceQuantity int32) (*domain.Inventory, error)
}

type BlockRepository interface {
	Create(ctx context.Context, block *domain.AvailabilityBlock) error
	Delete(ctx context.Context, id int32) error
	ListByProduct(ctx context.Context, productID int32) ([]domain.AvailabilityBlock, error)

	// BlockedQuantity sums quantity_blocked over blocks overlapping the
	// half-open window.
	BlockedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error)
}

type PricingRepository interface {
	// GetActive returns the product's single active rate plan, or
	// ErrUnconfiguredRate when none exists.
	GetActive(ctx context.Context, productID int32) (*domain.RentalPricing, error)

	// Upsert activates the given plan and deactivates any previous active
	// row for the product in one transaction.
	Upsert(ctx context.Context, p *domain.RentalPricing) error

	ListAddons(ctx context.Context, productID int32) ([]domain.Addon, error)
}

type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}
