package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"Pergola/internal/calc/cost"
	"Pergola/internal/repo"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []any{"section", "key", "material", "labor", "extra"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sheet, cellName, &r); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestParse(t *testing.T) {
	buf := workbook(t, [][]any{
		{"currency", "EUR"},
		{"tube", "60x60", 7.5},
		{"tube", "", 1},
		{"roofing", "slate", 40, 12, 4},
		{"wall", "glass", "55,5", 20},
		{"post", "", 30, 15},
		{"concrete", "", 110, 45},
		{"steel", "", 1.2},
		{"frame_labor", "", 3},
		{"scaffolding", "", 99},
		{"door", "", "abc"},
		{"vent", "", -5},
	})
	table, sum, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sum.Rows != 8 {
		t.Errorf("rows = %d, want 8", sum.Rows)
	}
	if want := []int{4, 11, 12, 13}; !reflect.DeepEqual(sum.Skipped, want) {
		t.Errorf("skipped = %v, want %v", sum.Skipped, want)
	}
	if table.Currency != "EUR" || table.Tubes["60x60"] != 7.5 || len(table.Tubes) != 1 {
		t.Errorf("tubes/currency = %q %v", table.Currency, table.Tubes)
	}
	if got := table.Roofing["slate"]; got != (cost.AreaPrice{Material: 40, Labor: 12, ScrewsPerM2: 4}) {
		t.Errorf("slate = %+v", got)
	}
	if got := table.Walls["glass"]; got.Material != 55.5 || got.Labor != 20 {
		t.Errorf("glass = %+v", got)
	}
	if table.Post != (cost.UnitPrice{Material: 30, Labor: 15}) || table.Concrete.Labor != 45 {
		t.Errorf("post/concrete = %+v %+v", table.Post, table.Concrete)
	}
	if table.SteelKg != 1.2 || table.FrameLaborPerM != 3 {
		t.Errorf("steel/labor = %v %v", table.SteelKg, table.FrameLaborPerM)
	}
	if table.Door != (cost.UnitPrice{}) || table.Vent != (cost.UnitPrice{}) {
		t.Errorf("bad rows leaked: %+v %+v", table.Door, table.Vent)
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	table, _, err := Parse(workbook(t, [][]any{{"tube", "80x80", 500}}))
	if err != nil {
		t.Fatal(err)
	}
	merged := cost.DefaultPrices().Merge(table)
	if merged.Tubes["80x80"] != 500 || merged.Tubes["40x40"] != cost.DefaultPrices().Tubes["40x40"] {
		t.Errorf("merged tubes = %v", merged.Tubes)
	}
	if merged.Post != cost.DefaultPrices().Post {
		t.Errorf("post overwritten: %+v", merged.Post)
	}
}

func TestParseFile(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "section")
	f.SetCellValue(sheet, "A2", "screw")
	f.SetCellValue(sheet, "C2", 0.5)
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	table, sum, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Rows != 1 || table.Screw != 0.5 {
		t.Errorf("screw = %v, rows = %d", table.Screw, sum.Rows)
	}
}

func TestParseRejects(t *testing.T) {
	if _, _, err := Parse(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Error("expected error for garbage input")
	}
	if _, _, err := Parse(workbook(t, nil)); err == nil {
		t.Error("expected error for header-only sheet")
	}
}

func upload(t *testing.T, h *Handler, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "prices.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/prices/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Import(rec, req)
	return rec
}

func TestHandlerImport(t *testing.T) {
	store := repo.NewMemoryPriceStore()
	h := &Handler{Prices: store}

	rec := upload(t, h, workbook(t, [][]any{{"tube", "50x50", 260}, {"bogus", "", 1}}).Bytes())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var res ImportResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Rows != 1 || len(res.Skipped) != 1 {
		t.Errorf("summary = %+v", res.Summary)
	}
	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("nothing saved: %v", err)
	}
	if saved.Tubes["50x50"] != 260 || saved.Tubes["80x80"] != cost.DefaultPrices().Tubes["80x80"] {
		t.Errorf("saved tubes = %v", saved.Tubes)
	}
}

func TestHandlerImportRejects(t *testing.T) {
	h := &Handler{Prices: repo.NewMemoryPriceStore()}
	if rec := upload(t, h, []byte("junk")); rec.Code != http.StatusBadRequest {
		t.Errorf("junk upload status = %d", rec.Code)
	}
	if rec := upload(t, h, workbook(t, [][]any{{"bogus", "", 1}}).Bytes()); rec.Code != http.StatusBadRequest {
		t.Errorf("no-rows upload status = %d", rec.Code)
	}

	rec := httptest.NewRecorder()
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}

	noStore := &Handler{}
	if rec := upload(t, noStore, workbook(t, [][]any{{"tube", "50x50", 260}}).Bytes()); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("no store status = %d, want 503", rec.Code)
	}
}
