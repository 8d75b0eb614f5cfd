package structure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/frame"
	"Pergola/internal/calc/params"
	"Pergola/internal/calc/roof"
	"Pergola/internal/repo"
)

func canopy() params.Set {
	return params.Set{
		Family:      params.Canopy,
		Width:       4,
		Length:      6,
		Height:      3,
		RoofShape:   roof.Gable,
		RoofHeight:  1,
		Overhang:    0.3,
		PillarCount: 2,
		TrussCount:  2,
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Direct, canopy(), cost.DefaultPrices())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Members) != 33 {
		t.Errorf("members = %d, want 33", len(res.Members))
	}
	if res.Counts[frame.KindPillar] != 4 || res.Counts[frame.KindRidge] != 1 {
		t.Errorf("counts = %v", res.Counts)
	}
	if res.Params.Bracing != params.BracingSimple || res.Params.PillarTube == "" {
		t.Errorf("defaults not applied: %+v", res.Params)
	}
	var sum float64
	for _, l := range res.Cost.Items {
		sum += l.Total()
	}
	if math.Abs(sum-res.Cost.TotalCost) > 1e-6 || res.Cost.TotalCost <= 0 {
		t.Errorf("total = %v, lines sum %v", res.Cost.TotalCost, sum)
	}
	if !strings.Contains(res.Notes, "4 pillars, 2 trusses") {
		t.Errorf("notes = %q", res.Notes)
	}
}

func TestCalculateRejectsBeforeGenerating(t *testing.T) {
	calls := 0
	g := generateFunc(func(p params.Set) []frame.Beam {
		calls++
		return frame.Generate(p)
	})
	bad := canopy()
	bad.Width = -1
	bad.RoofShape = "dome"
	_, err := Calculate(g, bad, cost.DefaultPrices())
	if !errors.Is(err, params.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if calls != 0 {
		t.Errorf("generator called %d times for invalid input", calls)
	}
	for _, frag := range []string{"width", "roof shape"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("error %q does not mention %s", err, frag)
		}
	}
}

func TestCalculateRejectsOversizedRuns(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*params.Set)
	}{
		{"lathing step", func(s *params.Set) { s.LathingStep = 1e-15 }},
		{"truss count", func(s *params.Set) { s.TrussCount = 1_000_000_000 }},
		{"pillar spacing", func(s *params.Set) { s.PillarCount, s.PillarSpacing = 0, 5e-324 }},
	}
	for _, tt := range tests {
		p := canopy()
		tt.mutate(&p)
		if _, err := Calculate(Direct, p, cost.DefaultPrices()); !errors.Is(err, params.ErrInvalid) {
			t.Errorf("%s: err = %v, want ErrInvalid", tt.name, err)
		}
	}
}

func TestCalculateUsesCache(t *testing.T) {
	c := frame.NewCache(8)
	for i := 0; i < 3; i++ {
		if _, err := Calculate(c, canopy(), cost.DefaultPrices()); err != nil {
			t.Fatal(err)
		}
	}
	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", hits, misses)
	}
}

func TestGenerateHasNoCost(t *testing.T) {
	res, err := Generate(Direct, canopy())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cost.Items) != 0 || len(res.Takeoff) == 0 {
		t.Errorf("generate result = %+v", res.Cost)
	}
}

func TestTubes(t *testing.T) {
	list := Tubes()
	if len(list) != 6 {
		t.Fatalf("tubes = %d, want 6", len(list))
	}
	if list[0].Label != "40x20" || list[len(list)-1].Label != "100x100" {
		t.Errorf("order = %s..%s", list[0].Label, list[len(list)-1].Label)
	}
	for _, ti := range list {
		if ti.Label == "80x80" && (len(ti.DefaultOf) != 1 || ti.DefaultOf[0] != string(frame.ClassPillar)) {
			t.Errorf("80x80 default_of = %v", ti.DefaultOf)
		}
	}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Frames: frame.NewCache(4)}
	body, _ := json.Marshal(canopy())

	rec := post(h.Generate, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Members) != 33 {
		t.Errorf("members = %d", len(res.Members))
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", "{", http.StatusBadRequest},
		{"invalid", `{"family":"canopy","width":0,"length":6,"height":3}`, http.StatusBadRequest},
		{"unknown family", `{"family":"tent","width":4,"length":6,"height":3,"pillar_count":2,"truss_count":2}`, http.StatusBadRequest},
		{"too many trusses", `{"family":"canopy","width":4,"length":60,"height":3,"roof_shape":"flat",` +
			`"pillar_count":2,"truss_spacing":1e-7}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := post(h.Generate, tt.body); rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}

func TestHandlerEstimate(t *testing.T) {
	store := repo.NewMemoryPriceStore()
	stored := cost.PriceTable{Post: cost.UnitPrice{Material: 100, Labor: 10}}
	if err := store.Save(context.Background(), stored); err != nil {
		t.Fatal(err)
	}
	h := &Handler{Prices: store}

	req := EstimateRequest{Params: canopy(), Prices: &cost.PriceTable{Currency: "EUR"}}
	body, _ := json.Marshal(req)
	rec := post(h.Estimate, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Cost.Currency != "EUR" {
		t.Errorf("currency = %q", res.Cost.Currency)
	}
	posts, ok := res.Cost.Line("Foundation: posts")
	if !ok || posts.MaterialCost != 400 || posts.LaborCost != 40 {
		t.Errorf("posts = %+v", posts)
	}
}

type brokenStore struct{ repo.MemoryPriceStore }

func (*brokenStore) Load(context.Context) (cost.PriceTable, error) {
	return cost.PriceTable{}, errors.New("connection refused")
}

func TestHandlerEstimateStoreFailure(t *testing.T) {
	h := &Handler{Prices: &brokenStore{}}
	body, _ := json.Marshal(EstimateRequest{Params: canopy()})
	if rec := post(h.Estimate, string(body)); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandlerUpdatePrices(t *testing.T) {
	store := repo.NewMemoryPriceStore()
	h := &Handler{Prices: store}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"tubes":{"80x80":999},"screw":3}`))
	rec := httptest.NewRecorder()
	h.UpdatePrices(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if saved.Tubes["80x80"] != 999 || saved.Screw != 3 || saved.Tubes["40x40"] != cost.DefaultPrices().Tubes["40x40"] {
		t.Errorf("saved = %+v", saved)
	}

	rec = httptest.NewRecorder()
	h.UpdatePrices(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader("[")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	(&Handler{}).UpdatePrices(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader("{}")))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("no store status = %d", rec.Code)
	}
}

func TestHandlerPricesAndTubes(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.PriceTable(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var table cost.PriceTable
	if err := json.NewDecoder(rec.Body).Decode(&table); err != nil {
		t.Fatal(err)
	}
	if table.Currency != cost.DefaultPrices().Currency || table.Tubes["80x80"] == 0 {
		t.Errorf("prices = %+v", table)
	}

	rec = httptest.NewRecorder()
	h.TubeList(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var tubes []TubeInfo
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&tubes); err != nil {
		t.Fatal(err)
	}
	if len(tubes) != 6 {
		t.Errorf("tubes = %d", len(tubes))
	}
}
