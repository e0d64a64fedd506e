package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
	"golfcart-rental-backend/internal/service"
)

// BookingHandler serves the public storefront endpoints: booking creation,
// lookup, availability checks and the payment-processor webhook.
type BookingHandler struct {
	bookings     service.BookingService
	availability service.AvailabilityService
}

func NewBookingHandler(bookings service.BookingService, availability service.AvailabilityService) *BookingHandler {
	return &BookingHandler{bookings: bookings, availability: availability}
}

type createBookingRequest struct {
	ProductID       int32                     `json:"product_id"`
	Quantity        int32                     `json:"quantity"`
	RentalType      string                    `json:"rental_type"`
	StartDate       string                    `json:"start_date"`
	EndDate         string                    `json:"end_date"`
	CustomerName    string                    `json:"customer_name"`
	CustomerEmail   string                    `json:"customer_email"`
	CustomerPhone   string                    `json:"customer_phone"`
	Addons          []service.AddonSelection  `json:"addons"`
	DeliveryAddress string                    `json:"delivery_address"`
	PickupLocation  string                    `json:"pickup_location"`
	Notes           string                    `json:"notes"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON payload"))
		return
	}

	start, err := parseRFC3339(req.StartDate)
	if err != nil {
		writeError(w, domain.NewValidationError("start_date", "must be an RFC 3339 timestamp"))
		return
	}
	end, err := parseRFC3339(req.EndDate)
	if err != nil {
		writeError(w, domain.NewValidationError("end_date", "must be an RFC 3339 timestamp"))
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), &service.CreateBookingRequest{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		RentalType:      domain.RentalType(strings.ToUpper(req.RentalType)),
		StartDate:       start,
		EndDate:         end,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Addons:          req.Addons,
		DeliveryAddress: req.DeliveryAddress,
		PickupLocation:  req.PickupLocation,
		Notes:           req.Notes,
		Identifier:      rateLimitIdentifier(req.CustomerEmail, r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Booking created",
		"booking_number", booking.BookingNumber,
		"product_id", booking.ProductID,
		"total_cents", booking.TotalCents)
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	booking, err := h.bookings.GetBookingByNumber(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type availabilityResponse struct {
	ProductID int32  `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Quantity  int32  `json:"quantity"`
	Available bool   `json:"available"`
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	productID, err := strconv.ParseInt(q.Get("product_id"), 10, 32)
	if err != nil || productID <= 0 {
		writeError(w, domain.NewValidationError("product_id", "must be a positive integer"))
		return
	}
	quantity := int64(1)
	if raw := q.Get("quantity"); raw != "" {
		quantity, err = strconv.ParseInt(raw, 10, 32)
		if err != nil || quantity < 1 {
			writeError(w, domain.NewValidationError("quantity", "must be a positive integer"))
			return
		}
	}
	start, err := parseRFC3339(q.Get("start_date"))
	if err != nil {
		writeError(w, domain.NewValidationError("start_date", "must be an RFC 3339 timestamp"))
		return
	}
	end, err := parseRFC3339(q.Get("end_date"))
	if err != nil {
		writeError(w, domain.NewValidationError("end_date", "must be an RFC 3339 timestamp"))
		return
	}
	if !end.After(start) {
		writeError(w, domain.NewValidationError("end_date", "must be after start date"))
		return
	}

	available, err := h.availability.Check(r.Context(), int32(productID), start, end, int32(quantity))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		ProductID: int32(productID),
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
		Quantity:  int32(quantity),
		Available: available,
	})
}

type paymentWebhookRequest struct {
	BookingNumber string `json:"booking_number"`
	PaymentStatus string `json:"payment_status"`
}

// PaymentWebhook records payment state reported by the payment processor.
// It never moves the booking status itself; staff confirm after reviewing
// the payment.
func (h *BookingHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var req paymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON payload"))
		return
	}
	if req.BookingNumber == "" {
		writeError(w, domain.NewValidationError("booking_number", "is required"))
		return
	}

	status := domain.PaymentStatus(strings.ToUpper(req.PaymentStatus))
	if err := h.bookings.RecordPaymentStatus(r.Context(), req.BookingNumber, status); err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Payment status recorded", "booking_number", req.BookingNumber, "payment_status", status)
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func parseRFC3339(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

func pathInt32(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return 0, strconv.ErrSyntax
	}
	return int32(v), nil
}

// rateLimitIdentifier keys throttling by customer email, falling back to the
// client IP for requests without one.
func rateLimitIdentifier(email string, r *http.Request) string {
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return e
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
