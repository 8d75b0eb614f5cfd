package structure

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/frame"
	"Pergola/internal/calc/params"
	"Pergola/internal/calc/tube"
	"Pergola/internal/repo"
)

type Handler struct {
	Frames Generator
	Prices repo.PriceStore
}

// EstimateRequest carries optional per-request price overrides on top of the
// stored table.
type EstimateRequest struct {
	Params params.Set       `json:"params"`
	Prices *cost.PriceTable `json:"prices,omitempty"`
}

func (h *Handler) generator() Generator {
	if h.Frames == nil {
		return Direct
	}
	return h.Frames
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input params.Set
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Generate(h.generator(), input)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	prices, err := repo.Current(r.Context(), h.Prices)
	if err != nil {
		log.Printf("load prices: %v", err)
		http.Error(w, "Price table unavailable", http.StatusInternalServerError)
		return
	}
	if req.Prices != nil {
		prices = prices.Merge(*req.Prices)
	}
	res, err := Calculate(h.generator(), req.Params, prices)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) PriceTable(w http.ResponseWriter, r *http.Request) {
	prices, err := repo.Current(r.Context(), h.Prices)
	if err != nil {
		log.Printf("load prices: %v", err)
		http.Error(w, "Price table unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, prices)
}

// UpdatePrices merges the posted partial table over the current one and stores it.
// Zero scalars in the body are ignored; tube, roofing and wall entries may be 0.
func (h *Handler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	if h.Prices == nil {
		http.Error(w, "Price store not configured", http.StatusServiceUnavailable)
		return
	}
	var input cost.PriceTable
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	current, err := repo.Current(r.Context(), h.Prices)
	if err != nil {
		log.Printf("load prices: %v", err)
		http.Error(w, "Price table unavailable", http.StatusInternalServerError)
		return
	}
	merged := current.Merge(input)
	if err := h.Prices.Save(r.Context(), merged); err != nil {
		log.Printf("save prices: %v", err)
		http.Error(w, "Could not save prices", http.StatusInternalServerError)
		return
	}
	writeJSON(w, merged)
}

// TubeInfo describes one nominal section and the member classes defaulting to it.
type TubeInfo struct {
	Label     string   `json:"label"`
	Width     float64  `json:"width"`
	Thickness float64  `json:"thickness"`
	DefaultOf []string `json:"default_of,omitempty"`
}

func Tubes() []TubeInfo {
	defaults := map[string][]string{}
	for _, c := range frame.Classes {
		d := c.Table().Default
		defaults[d] = append(defaults[d], string(c))
	}
	table := tube.PillarTable
	var out []TubeInfo
	for _, label := range table.Labels() {
		d := tube.Resolve(label, table)
		out = append(out, TubeInfo{Label: label, Width: d.Width, Thickness: d.Thickness, DefaultOf: defaults[label]})
	}
	return out
}

func (h *Handler) TubeList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Tubes())
}

// WriteError maps validation failures to 400 and anything else to 500.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, params.ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("calculation error: %v", err)
	http.Error(w, "Calculation error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
