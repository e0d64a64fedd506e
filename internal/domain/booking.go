package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "PENDING"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusRequiresAction BookingStatus = "REQUIRES_ACTION"
	BookingStatusInProgress     BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusNoShow         BookingStatus = "NO_SHOW"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusProcessing        PaymentStatus = "PROCESSING"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

type RentalType string

const (
	RentalTypeHourly RentalType = "HOURLY"
	RentalTypeDaily  RentalType = "DAILY"
	RentalTypeWeekly RentalType = "WEEKLY"
	RentalTypeCustom RentalType = "CUSTOM"
)

// Terminal reports whether the status ends the booking lifecycle.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusNoShow
}

// HoldsInventory reports whether a booking in this status counts against
// the product's reserved pool.
func (s BookingStatus) HoldsInventory() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRequiresAction, BookingStatusInProgress:
		return true
	}
	return false
}

// allowedTransitions is the booking state machine: current status to the
// set of statuses it may move to. Every other edit is rejected.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:        {BookingStatusConfirmed, BookingStatusRequiresAction, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusConfirmed:      {BookingStatusInProgress, BookingStatusRequiresAction, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusRequiresAction: {BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusInProgress:     {BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
}

// CanTransition reports whether the state machine permits moving a booking
// from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ReleasesInventory reports whether the transition must return the booking's
// reservation to the available pool. The release fires exactly once: a booking
// already in a terminal status cannot transition again.
func ReleasesInventory(from, to BookingStatus) bool {
	return from.HoldsInventory() && to.Terminal()
}

type Booking struct {
	ID              int32         `json:"id"`
	BookingNumber   string        `json:"booking_number"`
	ProductID       int32         `json:"product_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	Quantity        int32         `json:"quantity"`
	RentalType      RentalType    `json:"rental_type"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	DurationHours   int32         `json:"duration_hours"`
	DurationDays    int32         `json:"duration_days"`
	BaseRateCents   int64         `json:"base_rate_cents"`
	AddonTotalCents int64         `json:"addon_total_cents"`
	SubtotalCents   int64         `json:"subtotal_cents"`
	TaxCents        int64         `json:"tax_cents"`
	TotalCents      int64         `json:"total_cents"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	PickupLocation  string        `json:"pickup_location,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Addons          []BookingAddon `json:"addons,omitempty"`
	CancelledOn     *time.Time    `json:"cancelled_on,omitempty"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}

// BookingAddon is a price snapshot of an add-on at booking time. Totals are
// computed from these snapshots, not live catalog prices.
type BookingAddon struct {
	ID         int32  `json:"id"`
	BookingID  int32  `json:"booking_id"`
	AddonID    int32  `json:"addon_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int32  `json:"quantity"`
}
