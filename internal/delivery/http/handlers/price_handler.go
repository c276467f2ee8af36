package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/buxzona/buxzona-backend/internal/usecase"
)

type PriceHandler struct {
	pricing usecase.PricingUsecase
}

func NewPriceHandler(pricing usecase.PricingUsecase) *PriceHandler {
	return &PriceHandler{pricing: pricing}
}

// GetPrices always answers with whatever table is cached, fresh or not.
func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pricing.GetPrices())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
