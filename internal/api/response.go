package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "reservas/internal/errors"
	"reservas/internal/repository"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps service and store errors onto the JSON error envelope.
// Unexpected errors are logged and replaced with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *apperrors.HTTPError
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &httpErr):
	case errors.As(err, &validationErr):
		httpErr = apperrors.ErrBadRequest(apperrors.CodeValidation, validationErr.Error())
	case errors.Is(err, repository.ErrReservationNotFound):
		httpErr = apperrors.ErrNotFound("reservation not found")
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		httpErr = apperrors.ErrInternal()
	}
	writeJSON(w, httpErr.Status, httpErr)
}
