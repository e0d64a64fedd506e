package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
	"golfcart-rental-backend/internal/pricing"
	"golfcart-rental-backend/internal/ratelimit"
	"golfcart-rental-backend/internal/repository"
	"golfcart-rental-backend/internal/utils"
)

// bookingNumberRetries bounds regeneration attempts on a number collision.
const bookingNumberRetries = 3

type bookingService struct {
	bookingRepo  repository.BookingRepository
	pricingRepo  repository.PricingRepository
	availability AvailabilityService
	limiter      *ratelimit.Limiter
	audit        AuditService
	email        EmailService
	maxQuantity  int32
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	pricingRepo repository.PricingRepository,
	availability AvailabilityService,
	limiter *ratelimit.Limiter,
	audit AuditService,
	email EmailService,
	maxQuantity int32,
) BookingService {
	if maxQuantity <= 0 {
		maxQuantity = 20
	}
	return &bookingService{
		bookingRepo:  bookingRepo,
		pricingRepo:  pricingRepo,
		availability: availability,
		limiter:      limiter,
		audit:        audit,
		email:        email,
		maxQuantity:  maxQuantity,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if ok, retryAfter := s.limiter.Allow(req.Identifier); !ok {
			logger.SecurityEvent("booking_rate_limited", "identifier", req.Identifier, "retry_after", retryAfter)
			s.audit.Record(ctx, &domain.AuditEntry{
				Action:       "booking.create",
				ResourceType: "booking",
				Actor:        req.Identifier,
				Success:      false,
				ErrorMessage: "rate limit exceeded",
			})
			return nil, &domain.RateLimitError{RetryAfter: retryAfter}
		}
	}

	plan, err := s.pricingRepo.GetActive(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Calculate(plan, req.RentalType, req.StartDate, req.EndDate, req.Quantity)
	if err != nil {
		return nil, err
	}

	addons, err := s.resolveAddons(ctx, req)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check. It can race with a concurrent booking; the
	// conditional reserve inside CreateWithReservation is what actually
	// prevents double-booking.
	available, err := s.availability.Check(ctx, req.ProductID, req.StartDate, req.EndDate, req.Quantity)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrAvailabilityConflict
	}

	addonTotal := pricing.AddonTotal(addons)
	subtotal := quote.BaseRateCents + addonTotal
	tax := pricing.Tax(subtotal)

	booking := &domain.Booking{
		ProductID:       req.ProductID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Quantity:        req.Quantity,
		RentalType:      req.RentalType,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		DurationHours:   quote.DurationHours,
		DurationDays:    quote.DurationDays,
		BaseRateCents:   quote.BaseRateCents,
		AddonTotalCents: addonTotal,
		SubtotalCents:   subtotal,
		TaxCents:        tax,
		TotalCents:      subtotal + tax,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		DeliveryAddress: req.DeliveryAddress,
		PickupLocation:  req.PickupLocation,
		Notes:           req.Notes,
		Addons:          addons,
	}

	for attempt := 0; ; attempt++ {
		booking.BookingNumber = utils.NewBookingNumber(time.Now())
		err = s.bookingRepo.CreateWithReservation(ctx, booking)
		if errors.Is(err, domain.ErrDuplicateBookingNumber) && attempt < bookingNumberRetries {
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, domain.ErrInventoryNotFound) {
			logger.Critical("Booking creation hit missing inventory row",
				"product_id", req.ProductID, "identifier", req.Identifier)
		}
		s.audit.Record(ctx, &domain.AuditEntry{
			Action:       "booking.create",
			ResourceType: "booking",
			Actor:        req.Identifier,
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "booking.create",
		ResourceType: "booking",
		ResourceID:   booking.BookingNumber,
		Actor:        req.Identifier,
		NewValues:    marshalValues(booking),
		Success:      true,
	})

	if err := s.email.SendBookingConfirmation(ctx, booking); err != nil {
		logger.Warn("Failed to send booking confirmation email",
			"booking_number", booking.BookingNumber, "error", err)
	}

	return booking, nil
}

func (s *bookingService) validateCreate(req *CreateBookingRequest) error {
	if req.ProductID <= 0 {
		return domain.NewValidationError("product_id", "is required")
	}
	if req.Quantity < 1 || req.Quantity > s.maxQuantity {
		return domain.NewValidationError("quantity", fmt.Sprintf("must be between 1 and %d", s.maxQuantity))
	}
	switch req.RentalType {
	case domain.RentalTypeHourly, domain.RentalTypeDaily, domain.RentalTypeWeekly, domain.RentalTypeCustom:
	default:
		return domain.NewValidationError("rental_type", "must be one of HOURLY, DAILY, WEEKLY, CUSTOM")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return domain.NewValidationError("start_date", "start and end dates are required")
	}
	if !req.EndDate.After(req.StartDate) {
		return domain.NewValidationError("end_date", "must be after start date")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return domain.NewValidationError("customer_name", "is required")
	}
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return domain.NewValidationError("customer_email", "must be a valid email address")
	}
	for _, sel := range req.Addons {
		if sel.Quantity < 0 {
			return domain.NewValidationError("addons", "add-on quantity must not be negative")
		}
	}
	return nil
}

// resolveAddons snapshots catalog prices for the requested add-ons.
func (s *bookingService) resolveAddons(ctx context.Context, req *CreateBookingRequest) ([]domain.BookingAddon, error) {
	if len(req.Addons) == 0 {
		return nil, nil
	}

	catalog, err := s.pricingRepo.ListAddons(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int32]domain.Addon, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	addons := make([]domain.BookingAddon, 0, len(req.Addons))
	for _, sel := range req.Addons {
		item, ok := byID[sel.AddonID]
		if !ok {
			return nil, domain.NewValidationError("addons", fmt.Sprintf("add-on %d is not offered for this product", sel.AddonID))
		}
		qty := sel.Quantity
		if qty == 0 {
			qty = 1
		}
		addons = append(addons, domain.BookingAddon{
			AddonID:    item.ID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   qty,
		})
	}
	return addons, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetBookingByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return s.bookingRepo.GetByNumber(ctx, number)
}

func (s *bookingService) Transition(ctx context.Context, id int32, to domain.BookingStatus, actor string) (*domain.Booking, error) {
	before, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Transition(ctx, id, to)
	if err != nil {
		if errors.Is(err, domain.ErrInventoryNotFound) {
			logger.Critical("Booking transition hit missing inventory row",
				"booking_id", id, "to_status", to)
		}
		s.audit.Record(ctx, &domain.AuditEntry{
			Action:       "booking.transition",
			ResourceType: "booking",
			ResourceID:   before.BookingNumber,
			Actor:        actor,
			OldValues:    marshalValues(map[string]any{"status": before.Status}),
			NewValues:    marshalValues(map[string]any{"status": to}),
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "booking.transition",
		ResourceType: "booking",
		ResourceID:   booking.BookingNumber,
		Actor:        actor,
		OldValues:    marshalValues(map[string]any{"status": before.Status}),
		NewValues:    marshalValues(map[string]any{"status": booking.Status}),
		Success:      true,
	})

	if booking.Status == domain.BookingStatusCancelled && before.Status != domain.BookingStatusCancelled {
		if err := s.email.SendBookingCancellation(ctx, booking); err != nil {
			logger.Warn("Failed to send booking cancellation email",
				"booking_number", booking.BookingNumber, "error", err)
		}
	}

	return booking, nil
}

func (s *bookingService) RecordPaymentStatus(ctx context.Context, bookingNumber string, status domain.PaymentStatus) error {
	switch status {
	case domain.PaymentStatusPending, domain.PaymentStatusProcessing, domain.PaymentStatusPaid,
		domain.PaymentStatusFailed, domain.PaymentStatusRefunded, domain.PaymentStatusPartiallyRefunded:
	default:
		return domain.NewValidationError("payment_status", "unknown payment status")
	}

	booking, err := s.bookingRepo.GetByNumber(ctx, bookingNumber)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, status); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "booking.payment_status",
		ResourceType: "booking",
		ResourceID:   booking.BookingNumber,
		Actor:        "payment-processor",
		OldValues:    marshalValues(map[string]any{"payment_status": booking.PaymentStatus}),
		NewValues:    marshalValues(map[string]any{"payment_status": status}),
		Success:      true,
	})
	return nil
}

func (s *bookingService) ListBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.ListByStatus(ctx, status, page, pageSize)
}

func marshalValues(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
