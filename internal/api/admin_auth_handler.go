package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reservas/internal/entities"
	apperrors "reservas/internal/errors"
	"reservas/internal/service"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc}
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.ErrBadRequest(apperrors.CodeInvalidBody, "Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, apperrors.NewValidationError("missing required fields: email, password", "email", "password"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, r, apperrors.ErrUnauthorized("Invalid credentials"))
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.LoginResponse{Token: token})
}
