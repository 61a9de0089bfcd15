package api

import (
	"net/http"

	"reservas/internal/service"

	"github.com/gorilla/mux"
)

type RouterDeps struct {
	Reservations ReservationService
	Auth         service.AdminAuthService
	DB           Pinger
}

// NewRouter registers the JSON API routes. The HTML views are mounted on the
// same router by the caller.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	reservationHandler := NewReservationHandler(deps.Reservations)
	r.HandleFunc("/reservations", reservationHandler.ListReservations).Methods(http.MethodGet)
	r.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods(http.MethodPost)
	r.HandleFunc("/reservations/{id}", reservationHandler.GetReservation).Methods(http.MethodGet)
	r.HandleFunc("/reservations/{id}", reservationHandler.UpdateReservation).Methods(http.MethodPut)
	r.HandleFunc("/reservations/{id}", reservationHandler.DeleteReservation).Methods(http.MethodDelete)

	if deps.Auth != nil {
		authHandler := NewAdminAuthHandler(deps.Auth)
		r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	}
	if deps.DB != nil {
		healthHandler := &HealthHandler{DB: deps.DB}
		r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	}
	return r
}
