package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
	"golfcart-rental-backend/internal/service"
)

// AdminHandler serves the staff endpoints: booking lifecycle actions,
// availability blocks, pricing and inventory.
type AdminHandler struct {
	bookings service.BookingService
	admin    service.AdminService
}

func NewAdminHandler(bookings service.BookingService, admin service.AdminService) *AdminHandler {
	return &AdminHandler{bookings: bookings, admin: admin}
}

// transitionTargets maps the action path segment to its target status.
var transitionTargets = map[string]domain.BookingStatus{
	"confirm":  domain.BookingStatusConfirmed,
	"flag":     domain.BookingStatusRequiresAction,
	"start":    domain.BookingStatusInProgress,
	"complete": domain.BookingStatusCompleted,
	"cancel":   domain.BookingStatusCancelled,
	"no-show":  domain.BookingStatusNoShow,
}

func (h *AdminHandler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	action := mux.Vars(r)["action"]
	to, ok := transitionTargets[action]
	if !ok {
		writeError(w, domain.NewValidationError("action", "unknown booking action"))
		return
	}

	booking, err := h.bookings.Transition(r.Context(), id, to, adminActor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Booking transitioned",
		"booking_number", booking.BookingNumber,
		"status", booking.Status,
		"actor", adminActor(r))
	writeJSON(w, http.StatusOK, booking)
}

type listBookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := strings.ToUpper(q.Get("status"))
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	bookings, total, err := h.bookings.ListBookings(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listBookingsResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

type createBlockRequest struct {
	ProductID       int32  `json:"product_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	QuantityBlocked int32  `json:"quantity_blocked"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

func (h *AdminHandler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req createBlockRequest
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

	block := &domain.AvailabilityBlock{
		ProductID:       req.ProductID,
		StartDate:       start,
		EndDate:         end,
		QuantityBlocked: req.QuantityBlocked,
		Reason:          domain.BlockReason(strings.ToUpper(req.Reason)),
		Notes:           req.Notes,
	}
	if err := h.admin.CreateBlock(r.Context(), block, adminActor(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

func (h *AdminHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	if err := h.admin.DeleteBlock(r.Context(), id, adminActor(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	productID := queryInt32(r.URL.Query().Get("product_id"), 0)
	if productID <= 0 {
		writeError(w, domain.NewValidationError("product_id", "must be a positive integer"))
		return
	}

	blocks, err := h.admin.ListBlocks(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

type setPricingRequest struct {
	HourlyRateCents    *int64 `json:"hourly_rate_cents"`
	HourlyMinimumHours int32  `json:"hourly_minimum_hours"`
	DailyRateCents     *int64 `json:"daily_rate_cents"`
	WeeklyRateCents    *int64 `json:"weekly_rate_cents"`
	MonthlyRateCents   *int64 `json:"monthly_rate_cents"`
	DepositCents       int64  `json:"deposit_cents"`
}

func (h *AdminHandler) SetPricing(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt32(r, "product_id")
	if err != nil {
		writeError(w, domain.NewValidationError("product_id", "must be a positive integer"))
		return
	}

	var req setPricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON payload"))
		return
	}

	p := &domain.RentalPricing{
		ProductID:          productID,
		HourlyRateCents:    req.HourlyRateCents,
		HourlyMinimumHours: req.HourlyMinimumHours,
		DailyRateCents:     req.DailyRateCents,
		WeeklyRateCents:    req.WeeklyRateCents,
		MonthlyRateCents:   req.MonthlyRateCents,
		DepositCents:       req.DepositCents,
		Active:             true,
	}
	if err := h.admin.SetPricing(r.Context(), p, adminActor(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type adjustInventoryRequest struct {
	TotalQuantity       int32 `json:"total_quantity"`
	MaintenanceQuantity int32 `json:"maintenance_quantity"`
}

func (h *AdminHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt32(r, "product_id")
	if err != nil {
		writeError(w, domain.NewValidationError("product_id", "must be a positive integer"))
		return
	}

	var req adjustInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON payload"))
		return
	}
	if req.TotalQuantity < 0 || req.MaintenanceQuantity < 0 {
		writeError(w, domain.NewValidationError("total_quantity", "quantities must not be negative"))
		return
	}

	inv, err := h.admin.AdjustInventory(r.Context(), productID, req.TotalQuantity, req.MaintenanceQuantity, adminActor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func queryInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
