package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"reservas/internal/db"
	"reservas/internal/entities"
	apperrors "reservas/internal/errors"

	"github.com/gorilla/mux"
)

// ReservationService is the part of service.ReservationService the handlers use.
type ReservationService interface {
	ListReservations(ctx context.Context, statusFilter string) ([]db.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*db.Reservation, error)
	CreateReservation(ctx context.Context, req entities.CreateReservationRequest) (*db.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, req entities.UpdateReservationRequest) (*db.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (*db.Reservation, error)
}

type ReservationHandler struct {
	Service ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.ListReservations(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reservations == nil {
		reservations = []db.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := reservationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Service.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.ErrBadRequest(apperrors.CodeInvalidBody, "Invalid request body"))
		return
	}
	res, err := h.Service.CreateReservation(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := reservationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req entities.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.ErrBadRequest(apperrors.CodeInvalidBody, "Invalid request body"))
		return
	}
	res, err := h.Service.UpdateReservation(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := reservationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Service.DeleteReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func reservationID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrBadRequest(apperrors.CodeInvalidID, "Invalid ID")
	}
	return id, nil
}
