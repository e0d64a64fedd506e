package pricing

import (
	"time"

	"golfcart-rental-backend/internal/domain"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
	// Custom bookings of at least this many days qualify for the flat
	// monthly rate when one is configured.
	monthlyThresholdDays = 28

	// DefaultHourlyMinimum applies when a rate plan does not set its own
	// hourly minimum.
	DefaultHourlyMinimum = 2

	// GST is charged at a fixed 15%, expressed in basis points.
	taxBasisPoints = 1500
)

// Quote is the priced outcome for a rental window. RentalType records the
// scheme that actually priced the booking, which for CUSTOM is the
// best-available rate the duration qualified for.
type Quote struct {
	RentalType    domain.RentalType
	DurationHours int32
	DurationDays  int32
	BaseRateCents int64
}

// DurationHours returns the billable hours between two instants, rounding
// partial hours up. A partial hour is billed as a full one.
func DurationHours(start, end time.Time) int32 {
	d := end.Sub(start)
	hours := int32(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}

// DurationDays returns the billable days between two instants, rounding
// partial days up.
func DurationDays(start, end time.Time) int32 {
	d := end.Sub(start)
	days := int32(d / (hoursPerDay * time.Hour))
	if d%(hoursPerDay*time.Hour) > 0 {
		days++
	}
	return days
}

// Calculate prices a rental window against the product's active rate plan.
// It is a pure function; end must be strictly after start (validated by the
// caller) and quantity must be positive. A nil rate for the selected scheme
// yields ErrUnconfiguredRate, never a zero price.
func Calculate(p *domain.RentalPricing, rentalType domain.RentalType, start, end time.Time, quantity int32) (Quote, error) {
	q := Quote{
		RentalType:    rentalType,
		DurationHours: DurationHours(start, end),
		DurationDays:  DurationDays(start, end),
	}

	switch rentalType {
	case domain.RentalTypeHourly:
		if p.HourlyRateCents == nil {
			return Quote{}, domain.ErrUnconfiguredRate
		}
		minimum := p.HourlyMinimumHours
		if minimum <= 0 {
			minimum = DefaultHourlyMinimum
		}
		hours := q.DurationHours
		if hours < minimum {
			hours = minimum
		}
		q.BaseRateCents = *p.HourlyRateCents * int64(hours) * int64(quantity)
		return q, nil

	case domain.RentalTypeDaily:
		if p.DailyRateCents == nil {
			return Quote{}, domain.ErrUnconfiguredRate
		}
		q.BaseRateCents = *p.DailyRateCents * int64(q.DurationDays) * int64(quantity)
		return q, nil

	case domain.RentalTypeWeekly:
		if p.WeeklyRateCents == nil {
			return Quote{}, domain.ErrUnconfiguredRate
		}
		q.BaseRateCents = *p.WeeklyRateCents * int64(weeksFor(q.DurationDays)) * int64(quantity)
		return q, nil

	case domain.RentalTypeCustom:
		return calculateBestRate(p, q, quantity)
	}

	return Quote{}, domain.ErrUnconfiguredRate
}

// calculateBestRate picks the cheapest applicable scheme for a CUSTOM
// booking: flat monthly at 28+ days, weekly at 7+ days, daily otherwise.
// Each tier falls through when its rate is not configured.
func calculateBestRate(p *domain.RentalPricing, q Quote, quantity int32) (Quote, error) {
	if q.DurationDays >= monthlyThresholdDays && p.MonthlyRateCents != nil {
		q.BaseRateCents = *p.MonthlyRateCents * int64(quantity)
		return q, nil
	}
	if q.DurationDays >= daysPerWeek && p.WeeklyRateCents != nil {
		q.BaseRateCents = *p.WeeklyRateCents * int64(weeksFor(q.DurationDays)) * int64(quantity)
		return q, nil
	}
	if p.DailyRateCents != nil {
		q.BaseRateCents = *p.DailyRateCents * int64(q.DurationDays) * int64(quantity)
		return q, nil
	}
	return Quote{}, domain.ErrUnconfiguredRate
}

func weeksFor(days int32) int32 {
	weeks := days / daysPerWeek
	if days%daysPerWeek > 0 {
		weeks++
	}
	return weeks
}

// AddonTotal sums add-on snapshots. An add-on with no quantity counts once.
func AddonTotal(addons []domain.BookingAddon) int64 {
	var total int64
	for _, a := range addons {
		qty := a.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += a.PriceCents * int64(qty)
	}
	return total
}

// Tax returns the GST on a subtotal, rounded half-up to the cent.
func Tax(subtotalCents int64) int64 {
	return (subtotalCents*taxBasisPoints + 5000) / 10000
}
