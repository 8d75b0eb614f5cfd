package importer

import (
	"fmt"
	"io"
	"strings"

	"Pergola/internal/calc/cost"

	"github.com/xuri/excelize/v2"
)

// Sheet layout, one price per row after the header:
//
//	section | key | material | labor | extra
//
// Sections: currency, tube, frame_labor, roofing, wall, screw, post, concrete,
// steel, sand, gravel, floor, railing, door, vent. For roofing and wall rows
// extra is screws per m2. Unknown sections and unparsable rows are skipped.
const (
	colSection = iota
	colKey
	colMaterial
	colLabor
	colExtra
)

// Summary reports what an import picked up.
type Summary struct {
	Rows    int   `json:"rows"`
	Skipped []int `json:"skipped,omitempty"`
}

// Parse reads the first sheet of an xlsx workbook into a partial price table,
// meant to be merged over the current one.
func Parse(r io.Reader) (cost.PriceTable, Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return cost.PriceTable{}, Summary{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parseWorkbook(f)
}

// ParseFile is Parse for a workbook on disk.
func ParseFile(path string) (cost.PriceTable, Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return cost.PriceTable{}, Summary{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parseWorkbook(f)
}

func parseWorkbook(f *excelize.File) (cost.PriceTable, Summary, error) {
	var sum Summary
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return cost.PriceTable{}, sum, err
	}
	if len(rows) < 2 {
		return cost.PriceTable{}, sum, fmt.Errorf("empty sheet %q", sheet)
	}

	t := cost.PriceTable{
		Tubes:   map[string]float64{},
		Roofing: map[string]cost.AreaPrice{},
		Walls:   map[string]cost.AreaPrice{},
	}
	for i := 1; i < len(rows); i++ {
		if err := parseRow(&t, rows[i]); err != nil {
			// spreadsheet row numbers are 1-based
			sum.Skipped = append(sum.Skipped, i+1)
			continue
		}
		sum.Rows++
	}
	return t, sum, nil
}

func parseRow(t *cost.PriceTable, row []string) error {
	if len(row) < 2 {
		return fmt.Errorf("bad row")
	}
	section := strings.ToLower(strings.TrimSpace(row[colSection]))
	key := strings.TrimSpace(row[colKey])
	if section == "currency" {
		if key == "" {
			return fmt.Errorf("empty currency")
		}
		t.Currency = key
		return nil
	}

	material, err := cell(row, colMaterial, true)
	if err != nil {
		return err
	}
	labor, err := cell(row, colLabor, false)
	if err != nil {
		return err
	}
	extra, err := cell(row, colExtra, false)
	if err != nil {
		return err
	}
	unit := cost.UnitPrice{Material: material, Labor: labor}

	switch section {
	case "tube":
		if key == "" {
			return fmt.Errorf("tube without label")
		}
		t.Tubes[key] = material
	case "frame_labor":
		t.FrameLaborPerM = material
	case "roofing", "wall":
		if key == "" {
			return fmt.Errorf("%s without material", section)
		}
		ap := cost.AreaPrice{Material: material, Labor: labor, ScrewsPerM2: extra}
		if section == "roofing" {
			t.Roofing[key] = ap
		} else {
			t.Walls[key] = ap
		}
	case "screw":
		t.Screw = material
	case "post":
		t.Post = unit
	case "concrete":
		t.Concrete = unit
	case "steel":
		t.SteelKg = material
	case "sand":
		t.SandM3 = material
	case "gravel":
		t.GravelM3 = material
	case "floor":
		t.Floor = unit
	case "railing":
		t.Railing = unit
	case "door":
		t.Door = unit
	case "vent":
		t.Vent = unit
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return nil
}

func cell(row []string, col int, required bool) (float64, error) {
	if col >= len(row) || strings.TrimSpace(row[col]) == "" {
		if required {
			return 0, fmt.Errorf("missing column %d", col+1)
		}
		return 0, nil
	}
	return toFloat(row[col])
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.Replace(strings.TrimSpace(s), ",", ".", 1), "%f", &v)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %v", v)
	}
	return v, nil
}
