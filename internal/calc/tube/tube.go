package tube

import "sort"

// Dimension is the outer cross-section of a rectangular hollow tube, in metres.
type Dimension struct {
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`
}

const (
	Size40x20   = "40x20"
	Size40x40   = "40x40"
	Size50x50   = "50x50"
	Size60x60   = "60x60"
	Size80x80   = "80x80"
	Size100x100 = "100x100"
)

// Sizes lists the nominal labels the configurator offers, smallest first.
var Sizes = []string{Size40x20, Size40x40, Size50x50, Size60x60, Size80x80, Size100x100}

var smallest = Dimension{Width: 0.04, Thickness: 0.02}

// Table maps nominal labels to dimensions for one member class.
type Table struct {
	Sizes   map[string]Dimension
	Default string
}

func catalog() map[string]Dimension {
	return map[string]Dimension{
		Size40x20:   {Width: 0.04, Thickness: 0.02},
		Size40x40:   {Width: 0.04, Thickness: 0.04},
		Size50x50:   {Width: 0.05, Thickness: 0.05},
		Size60x60:   {Width: 0.06, Thickness: 0.06},
		Size80x80:   {Width: 0.08, Thickness: 0.08},
		Size100x100: {Width: 0.10, Thickness: 0.10},
	}
}

// Per-class tables. Pillars fall back to 80x80, truss members to 40x40, lathing to 40x20.
var (
	PillarTable  = Table{Sizes: catalog(), Default: Size80x80}
	TrussTable   = Table{Sizes: catalog(), Default: Size40x40}
	LathingTable = Table{Sizes: catalog(), Default: Size40x20}
)

// Resolve returns the dimension for label, or the table default when the label is
// unknown. A table without a usable default yields the smallest catalog section.
func Resolve(label string, table Table) Dimension {
	if d, ok := table.Sizes[label]; ok {
		return d
	}
	if d, ok := table.Sizes[table.Default]; ok {
		return d
	}
	return smallest
}

// Label returns label when the table knows it, otherwise the default label.
// Used to price a member class by the section that was actually generated.
func Label(label string, table Table) string {
	if _, ok := table.Sizes[label]; ok {
		return label
	}
	if _, ok := table.Sizes[table.Default]; ok {
		return table.Default
	}
	return Size40x20
}

// Known reports whether label is in the table.
func (t Table) Known(label string) bool {
	_, ok := t.Sizes[label]
	return ok
}

// Labels returns the table's labels ordered by cross-section area.
func (t Table) Labels() []string {
	out := make([]string, 0, len(t.Sizes))
	for k := range t.Sizes {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := t.Sizes[out[i]], t.Sizes[out[j]]
		if a.Width*a.Thickness != b.Width*b.Thickness {
			return a.Width*a.Thickness < b.Width*b.Thickness
		}
		return out[i] < out[j]
	})
	return out
}
