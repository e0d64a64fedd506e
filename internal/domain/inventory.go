package domain

import "time"

// Inventory is the per-product ledger. At rest, total equals
// available + reserved + maintenance; every mutation goes through a single
// conditional UPDATE so concurrent bookings cannot lose updates.
type Inventory struct {
	ProductID           int32     `json:"product_id"`
	TotalQuantity       int32     `json:"total_quantity"`
	AvailableQuantity   int32     `json:"available_quantity"`
	ReservedQuantity    int32     `json:"reserved_quantity"`
	MaintenanceQuantity int32     `json:"maintenance_quantity"`
	UpdatedOn           time.Time `json:"updated_on"`
}

type BlockReason string

const (
	BlockReasonMaintenance BlockReason = "MAINTENANCE"
	BlockReasonHoliday     BlockReason = "HOLIDAY"
	BlockReasonReserved    BlockReason = "RESERVED"
	BlockReasonOther       BlockReason = "OTHER"
)

// AvailabilityBlock is an administrator-created hold that subtracts from
// bookable quantity for its date span, independent of bookings.
type AvailabilityBlock struct {
	ID              int32       `json:"id"`
	ProductID       int32       `json:"product_id"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	QuantityBlocked int32       `json:"quantity_blocked"`
	Reason          BlockReason `json:"reason"`
	Notes           string      `json:"notes,omitempty"`
	CreatedOn       time.Time   `json:"created_on"`
}
