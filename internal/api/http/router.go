package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"golfcart-rental-backend/internal/security"
)

// NewRouter wires the public storefront routes and the token-guarded admin
// routes under /api/v1.
func NewRouter(booking *BookingHandler, admin *AdminHandler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/bookings", booking.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", booking.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/bookings/number/{number}", booking.GetByNumber).Methods(http.MethodGet)
	api.HandleFunc("/availability", booking.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/payments/webhook", booking.PaymentWebhook).Methods(http.MethodPost)

	staff := api.PathPrefix("/admin").Subrouter()
	staff.Use(AdminAuth(tokens))
	staff.HandleFunc("/bookings", admin.ListBookings).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{id:[0-9]+}/{action}", admin.TransitionBooking).Methods(http.MethodPost)
	staff.HandleFunc("/blocks", admin.CreateBlock).Methods(http.MethodPost)
	staff.HandleFunc("/blocks", admin.ListBlocks).Methods(http.MethodGet)
	staff.HandleFunc("/blocks/{id:[0-9]+}", admin.DeleteBlock).Methods(http.MethodDelete)
	staff.HandleFunc("/products/{product_id:[0-9]+}/pricing", admin.SetPricing).Methods(http.MethodPut)
	staff.HandleFunc("/products/{product_id:[0-9]+}/inventory", admin.AdjustInventory).Methods(http.MethodPut)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
