package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/buxzona/buxzona-backend/internal/delivery/http/dto"
	"github.com/buxzona/buxzona-backend/internal/usecase"
)

type AuthHandler struct {
	auth usecase.AuthUsecase
}

func NewAuthHandler(auth usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginWithCookie deliberately answers every credential failure the same
// way; the upstream collapses malformed/expired/revoked and so do we.
func (h *AuthHandler) LoginWithCookie(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cookie == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "cookie required"})
		return
	}

	identity, err := h.auth.LoginWithCookie(r.Context(), req.Cookie)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid session credential"})
		return
	}

	writeJSON(w, http.StatusOK, identity)
}
