package cost

import "Pergola/internal/calc/tube"

// Roofing and wall materials offered by default.
const (
	Polycarbonate = "polycarbonate"
	ProfiledSheet = "profiled-sheet"
	MetalTile     = "metal-tile"
	SoftTile      = "soft-tile"
	Glass         = "glass"
)

// AreaPrice prices a sheet material per square metre.
type AreaPrice struct {
	Material    float64 `json:"material" yaml:"material"`
	Labor       float64 `json:"labor" yaml:"labor"`
	ScrewsPerM2 float64 `json:"screws_per_m2" yaml:"screws_per_m2"`
}

// UnitPrice is a material price with the matching labor rate.
type UnitPrice struct {
	Material float64 `json:"material" yaml:"material"`
	Labor    float64 `json:"labor" yaml:"labor"`
}

// PriceTable holds every unit price the estimator needs. Tube prices are per
// metre keyed by nominal label; roofing and wall prices are keyed by material tag.
type PriceTable struct {
	Currency string `json:"currency" yaml:"currency"`

	Tubes          map[string]float64 `json:"tubes" yaml:"tubes"`
	FrameLaborPerM float64            `json:"frame_labor_per_m" yaml:"frame_labor_per_m"`

	Roofing        map[string]AreaPrice `json:"roofing" yaml:"roofing"`
	DefaultRoofing string               `json:"default_roofing" yaml:"default_roofing"`
	Walls          map[string]AreaPrice `json:"walls" yaml:"walls"`
	DefaultWall    string               `json:"default_wall" yaml:"default_wall"`
	Screw          float64              `json:"screw" yaml:"screw"`

	Post     UnitPrice `json:"post" yaml:"post"`
	Concrete UnitPrice `json:"concrete_m3" yaml:"concrete_m3"`
	SteelKg  float64   `json:"steel_kg" yaml:"steel_kg"`
	SandM3   float64   `json:"sand_m3" yaml:"sand_m3"`
	GravelM3 float64   `json:"gravel_m3" yaml:"gravel_m3"`

	Floor   UnitPrice `json:"floor_m2" yaml:"floor_m2"`
	Railing UnitPrice `json:"railing_m2" yaml:"railing_m2"`
	Door    UnitPrice `json:"door" yaml:"door"`
	Vent    UnitPrice `json:"vent" yaml:"vent"`
}

// DefaultPrices is the built-in price list used when no table has been supplied.
func DefaultPrices() PriceTable {
	return PriceTable{
		Currency: "RUB",
		Tubes: map[string]float64{
			tube.Size40x20:   120,
			tube.Size40x40:   180,
			tube.Size50x50:   240,
			tube.Size60x60:   300,
			tube.Size80x80:   450,
			tube.Size100x100: 620,
		},
		FrameLaborPerM: 150,
		Roofing: map[string]AreaPrice{
			Polycarbonate: {Material: 650, Labor: 250, ScrewsPerM2: 6},
			ProfiledSheet: {Material: 550, Labor: 250, ScrewsPerM2: 8},
			MetalTile:     {Material: 700, Labor: 300, ScrewsPerM2: 8},
			SoftTile:      {Material: 900, Labor: 450, ScrewsPerM2: 10},
		},
		DefaultRoofing: Polycarbonate,
		Walls: map[string]AreaPrice{
			Polycarbonate: {Material: 650, Labor: 250, ScrewsPerM2: 6},
			Glass:         {Material: 2200, Labor: 600},
		},
		DefaultWall: Polycarbonate,
		Screw:       8,
		Post:        UnitPrice{Material: 2500, Labor: 1500},
		Concrete:    UnitPrice{Material: 6500, Labor: 3000},
		SteelKg:     90,
		SandM3:      900,
		GravelM3:    1600,
		Floor:       UnitPrice{Material: 1800, Labor: 700},
		Railing:     UnitPrice{Material: 2500, Labor: 800},
		Door:        UnitPrice{Material: 9000, Labor: 2000},
		Vent:        UnitPrice{Material: 4500, Labor: 1000},
	}
}

// TubePrice is the price per metre of label, falling back to the price of
// fallback when label is not priced. Missing both yields zero.
func (t PriceTable) TubePrice(label, fallback string) float64 {
	if p, ok := t.Tubes[label]; ok {
		return p
	}
	return t.Tubes[fallback]
}

// RoofingPrice resolves a roofing material tag, falling back to DefaultRoofing.
// The returned tag is the one actually priced.
func (t PriceTable) RoofingPrice(material string) (string, AreaPrice) {
	return lookupArea(t.Roofing, material, t.DefaultRoofing)
}

// WallPrice resolves a wall material tag, falling back to DefaultWall.
func (t PriceTable) WallPrice(material string) (string, AreaPrice) {
	return lookupArea(t.Walls, material, t.DefaultWall)
}

func lookupArea(m map[string]AreaPrice, key, def string) (string, AreaPrice) {
	if p, ok := m[key]; ok {
		return key, p
	}
	if p, ok := m[def]; ok {
		return def, p
	}
	return def, AreaPrice{}
}

// Merge overlays the non-zero values of o onto t and returns the result. A zero
// scalar in o means "keep t's value", so scalar prices cannot be cleared this
// way. Map entries are merged key by key and do take zero values.
func (t PriceTable) Merge(o PriceTable) PriceTable {
	out := t
	out.Tubes = mergeFloat(t.Tubes, o.Tubes)
	out.Roofing = mergeArea(t.Roofing, o.Roofing)
	out.Walls = mergeArea(t.Walls, o.Walls)
	if o.Currency != "" {
		out.Currency = o.Currency
	}
	if o.DefaultRoofing != "" {
		out.DefaultRoofing = o.DefaultRoofing
	}
	if o.DefaultWall != "" {
		out.DefaultWall = o.DefaultWall
	}
	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setU := func(dst *UnitPrice, v UnitPrice) {
		setF(&dst.Material, v.Material)
		setF(&dst.Labor, v.Labor)
	}
	setF(&out.FrameLaborPerM, o.FrameLaborPerM)
	setF(&out.Screw, o.Screw)
	setF(&out.SteelKg, o.SteelKg)
	setF(&out.SandM3, o.SandM3)
	setF(&out.GravelM3, o.GravelM3)
	setU(&out.Post, o.Post)
	setU(&out.Concrete, o.Concrete)
	setU(&out.Floor, o.Floor)
	setU(&out.Railing, o.Railing)
	setU(&out.Door, o.Door)
	setU(&out.Vent, o.Vent)
	return out
}

func mergeFloat(a, b map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeArea(a, b map[string]AreaPrice) map[string]AreaPrice {
	out := make(map[string]AreaPrice, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
