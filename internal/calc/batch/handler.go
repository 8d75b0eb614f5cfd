package batch

import (
	"encoding/json"
	"log"
	"net/http"

	"Pergola/internal/calc/structure"
	"Pergola/internal/repo"
)

type Handler struct {
	Frames structure.Generator
	Prices repo.PriceStore
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	prices, err := repo.Current(r.Context(), h.Prices)
	if err != nil {
		log.Printf("load prices: %v", err)
		http.Error(w, "Price table unavailable", http.StatusInternalServerError)
		return
	}
	frames := h.Frames
	if frames == nil {
		frames = structure.Direct
	}
	res, err := Calculate(frames, input, prices)
	if err != nil {
		structure.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
