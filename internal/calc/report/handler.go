package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/params"
	"Pergola/internal/calc/structure"
	"Pergola/internal/repo"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string           `json:"project"`
	Author  string           `json:"author"`
	Title   string           `json:"title"`
	Notes   string           `json:"notes"`
	Params  params.Set       `json:"params"`
	Prices  *cost.PriceTable `json:"prices,omitempty"`
}

// Meta is the report header. Number is filled with a fresh uuid when empty.
type Meta struct {
	Project string
	Author  string
	Title   string
	Notes   string
	Number  string
	Date    time.Time
}

type Handler struct {
	Frames structure.Generator
	Prices repo.PriceStore
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
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
	if input.Prices != nil {
		prices = prices.Merge(*input.Prices)
	}
	frames := h.Frames
	if frames == nil {
		frames = structure.Direct
	}
	res, err := structure.Calculate(frames, input.Params, prices)
	if err != nil {
		structure.WriteError(w, err)
		return
	}

	meta := Meta{Project: input.Project, Author: input.Author, Title: input.Title, Notes: input.Notes}
	pdf, number := Build(res, meta)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"report-%s.pdf\"", number))
	w.Header().Set("X-Report-Number", number)
	// headers are already sent, so a failed write can only be logged
	if err := pdf.Output(w); err != nil {
		log.Printf("report %s: %v", number, err)
	}
}

// Write renders the report for res into out and returns its number.
func Write(out io.Writer, res structure.Result, meta Meta) (string, error) {
	pdf, number := Build(res, meta)
	return number, pdf.Output(out)
}

// Build lays out the cost report: header, parameters, tube takeoff and the
// priced lines with totals.
func Build(res structure.Result, meta Meta) (*gofpdf.Fpdf, string) {
	if meta.Title == "" {
		meta.Title = "Structure Cost Report"
	}
	if meta.Number == "" {
		meta.Number = uuid.New().String()
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}
	p := res.Params

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Report: %s", meta.Number))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Parameters")
	rows := [][2]string{
		{"Structure", string(p.Family)},
		{"Width x length x height, m", fmt.Sprintf("%.2f x %.2f x %.2f", p.Width, p.Length, p.Height)},
		{"Roof", fmt.Sprintf("%s, rise %.2f m, overhang %.2f m, %s", p.RoofShape, p.RoofHeight, p.Overhang, p.RoofMaterial)},
		{"Truss bracing", string(p.Bracing)},
		{"Tubes (pillar / truss / lathing)", fmt.Sprintf("%s / %s / %s", p.PillarTube, p.TrussTube, p.LathingTube)},
		{"Foundation", string(p.Foundation)},
		{"Color", p.Color},
	}
	for _, row := range rows {
		pdf.CellFormat(70, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Tube takeoff")
	header(pdf, []string{"Class", "Section", "Pcs", "Length, m", "Bars"}, []float64{55, 30, 25, 35, 25})
	for _, l := range res.Takeoff {
		pdf.CellFormat(55, 6, string(l.Class), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, l.Section, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", l.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", l.Length), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", l.StockBars), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Cost")
	widths := []float64{80, 35, 35, 35}
	header(pdf, []string{"Item", "Material", "Labor", "Total"}, widths)
	for _, l := range res.Cost.Items {
		pdf.CellFormat(widths[0], 6, l.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, money(l.MaterialCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, money(l.LaborCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, money(l.Total()), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 7, "Total, "+res.Cost.Currency, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 7, money(res.Cost.MaterialTotal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, money(res.Cost.LaborTotal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, money(res.Cost.TotalCost), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range res.Cost.Items {
		pdf.MultiCell(0, 5, l.Name+": "+l.Detail, "", "L", false)
	}
	if meta.Notes != "" || res.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, res.Notes, "", "L", false)
		if meta.Notes != "" {
			pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
		}
	}
	return pdf, meta.Number
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func header(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, c, "1", ln, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
