package service

import (
	"context"
	"time"

	"golfcart-rental-backend/internal/domain"
)

// AddonSelection is a requested add-on; price comes from the catalog, never
// from the caller.
type AddonSelection struct {
	AddonID  int32 `json:"addon_id"`
	Quantity int32 `json:"quantity"`
}

// CreateBookingRequest carries everything the booking-creation operation
// needs. Identifier is the rate-limit key (customer email or client IP).
type CreateBookingRequest struct {
	ProductID       int32
	Quantity        int32
	RentalType      domain.RentalType
	StartDate       time.Time
	EndDate         time.Time
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Addons          []AddonSelection
	DeliveryAddress string
	PickupLocation  string
	Notes           string
	Identifier      string
}

type BookingService interface {
	// CreateBooking validates, throttles, prices and reserves in that
	// order. The returned booking is PENDING with payment PENDING.
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error)

	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error)

	// Transition drives the booking state machine; the ledger delta happens
	// in the same transaction as the status write.
	Transition(ctx context.Context, id int32, to domain.BookingStatus, actor string) (*domain.Booking, error)

	RecordPaymentStatus(ctx context.Context, bookingNumber string, status domain.PaymentStatus) error
	ListBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type AvailabilityService interface {
	// Check reports whether quantity units can be promised for the half-open
	// window. Advisory: the reservation's own conditional update is the
	// safety net under races.
	Check(ctx context.Context, productID int32, start, end time.Time, quantity int32) (bool, error)
}

type AdminService interface {
	CreateBlock(ctx context.Context, block *domain.AvailabilityBlock, actor string) error
	DeleteBlock(ctx context.Context, id int32, actor string) error
	ListBlocks(ctx context.Context, productID int32) ([]domain.AvailabilityBlock, error)
	SetPricing(ctx context.Context, p *domain.RentalPricing, actor string) error
	AdjustInventory(ctx context.Context, productID, totalQuantity, maintenanceQuantity int32, actor string) (*domain.Inventory, error)
}

// AuditService records actions without ever failing the caller.
type AuditService interface {
	Record(ctx context.Context, entry *domain.AuditEntry)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
	SendBookingCancellation(ctx context.Context, booking *domain.Booking) error
}
