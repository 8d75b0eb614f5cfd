package frame

import (
	"math"

	"Pergola/internal/calc/params"
)

// StockLength is the length of tube sold as one bar, in metres.
const StockLength = 6.0

// TakeoffLine is the tube demand of one member class.
type TakeoffLine struct {
	Class     Class   `json:"class"`
	Section   string  `json:"section"`
	Count     int     `json:"count"`
	Length    float64 `json:"length_m"`
	StockBars int     `json:"stock_bars"`
}

// Takeoff totals members per class in Classes order. Classes without members
// are left out.
func Takeoff(p params.Set, beams []Beam) []TakeoffLine {
	counts := make(map[Class]int)
	lengths := make(map[Class]float64)
	for _, b := range beams {
		c := b.Kind.Class()
		counts[c]++
		lengths[c] += b.Length()
	}

	var out []TakeoffLine
	for _, c := range Classes {
		if counts[c] == 0 {
			continue
		}
		out = append(out, TakeoffLine{
			Class:     c,
			Section:   SectionLabel(p, c),
			Count:     counts[c],
			Length:    lengths[c],
			StockBars: int(math.Ceil(lengths[c] / StockLength)),
		})
	}
	return out
}
