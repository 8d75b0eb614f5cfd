package importer

import (
	"encoding/json"
	"log"
	"net/http"

	"Pergola/internal/calc/cost"
	"Pergola/internal/repo"
)

type Handler struct {
	Prices repo.PriceStore
}

type ImportResult struct {
	Summary
	Prices cost.PriceTable `json:"prices"`
}

// Import merges an uploaded workbook over the current table and stores the result.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if h.Prices == nil {
		http.Error(w, "Price store not configured", http.StatusServiceUnavailable)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, sum, err := Parse(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if sum.Rows == 0 {
		http.Error(w, "No price rows", http.StatusBadRequest)
		return
	}
	current, err := repo.Current(r.Context(), h.Prices)
	if err != nil {
		log.Printf("load prices: %v", err)
		http.Error(w, "Price table unavailable", http.StatusInternalServerError)
		return
	}
	merged := current.Merge(parsed)
	if err := h.Prices.Save(r.Context(), merged); err != nil {
		log.Printf("save prices: %v", err)
		http.Error(w, "Could not save prices", http.StatusInternalServerError)
		return
	}
	log.Printf("imported %d price rows, skipped %d", sum.Rows, len(sum.Skipped))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Summary: sum, Prices: merged})
}
