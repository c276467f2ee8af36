package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/buxzona/buxzona-backend/internal/delivery/http/dto"
	"github.com/buxzona/buxzona-backend/internal/usecase"
)

type VerifyHandler struct {
	verification usecase.VerificationUsecase
}

func NewVerifyHandler(verification usecase.VerificationUsecase) *VerifyHandler {
	return &VerifyHandler{verification: verification}
}

// VerifyGamepass distinguishes "price differs" (400 with both values) from
// "could not check" (500), per the verification contract.
func (h *VerifyHandler) VerifyGamepass(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyGamepassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.VerifyGamepassResponse{Success: false, Error: "invalid request body"})
		return
	}
	if req.ListingURL == "" || req.ExpectedAmount <= 0 {
		writeJSON(w, http.StatusBadRequest, dto.VerifyGamepassResponse{Success: false, Error: "listingUrl and positive expectedAmount required"})
		return
	}

	result, err := h.verification.VerifyGamepass(r.Context(), req.ListingURL, req.ExpectedAmount)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.VerifyGamepassResponse{Success: false, Error: "could not verify gamepass price"})
		return
	}

	if !result.OK {
		writeJSON(w, http.StatusBadRequest, dto.VerifyGamepassResponse{
			Success:      false,
			ActualAmount: result.Actual,
			Error:        result.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyGamepassResponse{Success: true, ActualAmount: result.Actual})
}
