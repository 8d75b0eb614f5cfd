package cost

import (
	"fmt"
	"math"

	"Pergola/internal/calc/frame"
	"Pergola/internal/calc/params"
)

// LineItem is one priced position of the estimate. Detail spells out the
// quantity and unit prices behind the numbers.
type LineItem struct {
	Name         string  `json:"name"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	Detail       string  `json:"detail"`
}

func (l LineItem) Total() float64 {
	return l.MaterialCost + l.LaborCost
}

type Breakdown struct {
	Items         []LineItem `json:"items"`
	MaterialTotal float64    `json:"material_total"`
	LaborTotal    float64    `json:"labor_total"`
	TotalCost     float64    `json:"total_cost"`
	Currency      string     `json:"currency"`
}

var classNames = map[frame.Class]string{
	frame.ClassPillar:    "Frame: pillars",
	frame.ClassRoofChord: "Frame: roof chords and cross beams",
	frame.ClassTruss:     "Frame: truss web",
	frame.ClassLathing:   "Frame: lathing",
}

// Estimate prices the generated members and the covering for p. Members are
// used only for framing lengths and the pillar count; covering areas come from
// the dimensions.
func Estimate(beams []frame.Beam, prices PriceTable, p params.Set) Breakdown {
	var b Breakdown
	b.Currency = prices.Currency

	area := RoofArea(p)
	tag, roofing := prices.RoofingPrice(p.RoofMaterial)
	b.add(areaLine("Roof covering ("+tag+")", area, roofing.Material, roofing.Labor))

	for _, l := range frame.Takeoff(p, beams) {
		price := prices.TubePrice(l.Section, l.Class.Table().Default)
		b.add(LineItem{
			Name:         fmt.Sprintf("%s %s", classNames[l.Class], l.Section),
			MaterialCost: l.Length * price,
			LaborCost:    l.Length * prices.FrameLaborPerM,
			Detail: fmt.Sprintf("%d pcs, %.2f m x %.2f + labor %.2f m x %.2f (%d bars of %.0f m)",
				l.Count, l.Length, price, l.Length, prices.FrameLaborPerM, l.StockBars, frame.StockLength),
		})
	}

	switch p.Foundation {
	case params.FoundationSlab:
		b.slab(p, prices)
	default:
		posts := frame.CountByKind(beams)[frame.KindPillar]
		b.add(countLine("Foundation: posts", posts, prices.Post))
	}

	screws := int(math.Ceil(area * roofing.ScrewsPerM2))
	b.add(LineItem{
		Name:         "Fasteners",
		MaterialCost: float64(screws) * prices.Screw,
		Detail: fmt.Sprintf("ceil(%.2f m2 x %.1f/m2) = %d pcs x %.2f",
			area, roofing.ScrewsPerM2, screws, prices.Screw),
	})

	switch p.Family {
	case params.Gazebo:
		if p.Floor {
			b.add(areaLine("Floor", p.Width*p.Length, prices.Floor.Material, prices.Floor.Labor))
		}
		if p.RailingHeight > 0 {
			l := RailingLength(p)
			line := areaLine("Railing", l*p.RailingHeight, prices.Railing.Material, prices.Railing.Labor)
			line.Detail = fmt.Sprintf("%.2f m x %.2f m, ", l, p.RailingHeight) + line.Detail
			b.add(line)
		}
	case params.Greenhouse:
		wtag, wall := prices.WallPrice(p.WallMaterial)
		b.add(areaLine("Walls ("+wtag+")", WallArea(p), wall.Material, wall.Labor))
		if p.Doors > 0 {
			b.add(countLine("Doors", p.Doors, prices.Door))
		}
		if p.Vents > 0 {
			b.add(countLine("Vents", p.Vents, prices.Vent))
		}
	}
	return b
}

func (b *Breakdown) slab(p params.Set, prices PriceTable) {
	vol := SlabVolume(p)
	b.add(LineItem{
		Name:         "Foundation: concrete slab",
		MaterialCost: vol * prices.Concrete.Material,
		LaborCost:    vol * prices.Concrete.Labor,
		Detail: fmt.Sprintf("%.2f m2 x %.3f m = %.3f m3 x %.2f + labor %.3f m3 x %.2f",
			SlabArea(p), p.SlabThicknessMM/1000, vol, prices.Concrete.Material, vol, prices.Concrete.Labor),
	})
	mass := RebarMass(p)
	b.add(LineItem{
		Name:         "Foundation: rebar",
		MaterialCost: mass * prices.SteelKg,
		Detail: fmt.Sprintf("d%.0f mm @ %.0f mm, 2 layers: %.1f kg x %.2f",
			p.RebarDiameterMM, p.RebarSpacingMM, mass, prices.SteelKg),
	})
	sand, gravel := BeddingVolumes(p)
	b.add(LineItem{
		Name:         "Foundation: bedding",
		MaterialCost: sand*prices.SandM3 + gravel*prices.GravelM3,
		Detail: fmt.Sprintf("sand %.3f m3 x %.2f + gravel %.3f m3 x %.2f",
			sand, prices.SandM3, gravel, prices.GravelM3),
	})
}

func (b *Breakdown) add(l LineItem) {
	b.Items = append(b.Items, l)
	b.MaterialTotal += l.MaterialCost
	b.LaborTotal += l.LaborCost
	b.TotalCost = b.MaterialTotal + b.LaborTotal
}

func areaLine(name string, area, material, labor float64) LineItem {
	return LineItem{
		Name:         name,
		MaterialCost: area * material,
		LaborCost:    area * labor,
		Detail:       fmt.Sprintf("%.2f m2 x %.2f + labor %.2f m2 x %.2f", area, material, area, labor),
	}
}

func countLine(name string, n int, price UnitPrice) LineItem {
	return LineItem{
		Name:         name,
		MaterialCost: float64(n) * price.Material,
		LaborCost:    float64(n) * price.Labor,
		Detail:       fmt.Sprintf("%d pcs x %.2f + labor %d pcs x %.2f", n, price.Material, n, price.Labor),
	}
}

// Line returns the first item with the given name.
func (b Breakdown) Line(name string) (LineItem, bool) {
	for _, l := range b.Items {
		if l.Name == name {
			return l, true
		}
	}
	return LineItem{}, false
}
