package domain

import "time"

// RentalPricing holds the active rate plan for a product. A nil rate means
// that rental type is not offered for the product.
type RentalPricing struct {
	ID                 int32     `json:"id"`
	ProductID          int32     `json:"product_id"`
	HourlyRateCents    *int64    `json:"hourly_rate_cents,omitempty"`
	HourlyMinimumHours int32     `json:"hourly_minimum_hours,omitempty"`
	DailyRateCents     *int64    `json:"daily_rate_cents,omitempty"`
	WeeklyRateCents    *int64    `json:"weekly_rate_cents,omitempty"`
	MonthlyRateCents   *int64    `json:"monthly_rate_cents,omitempty"`
	DepositCents       int64     `json:"deposit_cents"`
	Active             bool      `json:"active"`
	CreatedOn          time.Time `json:"created_on"`
}

// Addon is a catalog extra (cooler, seat cover, charger) offered with a product.
type Addon struct {
	ID         int32  `json:"id"`
	ProductID  int32  `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}
