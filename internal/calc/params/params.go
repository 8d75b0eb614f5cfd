package params

import (
	"Pergola/internal/calc/roof"
	"Pergola/internal/calc/tube"
)

type Family string

const (
	Canopy     Family = "canopy"
	Gazebo     Family = "gazebo"
	Greenhouse Family = "greenhouse"
)

type Bracing string

const (
	BracingSimple     Bracing = "simple"
	BracingReinforced Bracing = "reinforced"
	BracingLattice    Bracing = "lattice"
)

type Foundation string

const (
	FoundationPosts Foundation = "posts"
	FoundationSlab  Foundation = "slab"
)

// Set is the full parameter record of one structure. It holds only scalars and
// tags so it stays comparable and can key the generation cache.
type Set struct {
	Family Family `json:"family" mapstructure:"family"`

	Width      float64    `json:"width" mapstructure:"width"`
	Length     float64    `json:"length" mapstructure:"length"`
	Height     float64    `json:"height" mapstructure:"height"`
	RoofHeight float64    `json:"roof_height" mapstructure:"roof_height"`
	Overhang   float64    `json:"overhang" mapstructure:"overhang"`
	RoofShape  roof.Shape `json:"roof_shape" mapstructure:"roof_shape"`
	Bracing    Bracing    `json:"bracing" mapstructure:"bracing"`

	PillarCount   int     `json:"pillar_count" mapstructure:"pillar_count"`
	PillarSpacing float64 `json:"pillar_spacing" mapstructure:"pillar_spacing"`
	TrussCount    int     `json:"truss_count" mapstructure:"truss_count"`
	TrussSpacing  float64 `json:"truss_spacing" mapstructure:"truss_spacing"`
	LathingStep   float64 `json:"lathing_step" mapstructure:"lathing_step"`

	PillarTube  string `json:"pillar_tube" mapstructure:"pillar_tube"`
	TrussTube   string `json:"truss_tube" mapstructure:"truss_tube"`
	LathingTube string `json:"lathing_tube" mapstructure:"lathing_tube"`

	RoofMaterial string `json:"roof_material" mapstructure:"roof_material"`
	Color        string `json:"color" mapstructure:"color"`

	Foundation      Foundation `json:"foundation" mapstructure:"foundation"`
	SlabExtension   float64    `json:"slab_extension" mapstructure:"slab_extension"`
	SlabThicknessMM float64    `json:"slab_thickness_mm" mapstructure:"slab_thickness_mm"`
	SandLayerMM     float64    `json:"sand_layer_mm" mapstructure:"sand_layer_mm"`
	GravelLayerMM   float64    `json:"gravel_layer_mm" mapstructure:"gravel_layer_mm"`
	RebarDiameterMM float64    `json:"rebar_diameter_mm" mapstructure:"rebar_diameter_mm"`
	RebarSpacingMM  float64    `json:"rebar_spacing_mm" mapstructure:"rebar_spacing_mm"`

	// gazebo
	Floor         bool    `json:"floor" mapstructure:"floor"`
	RailingHeight float64 `json:"railing_height" mapstructure:"railing_height"`

	// greenhouse
	WallMaterial string `json:"wall_material" mapstructure:"wall_material"`
	Doors        int    `json:"doors" mapstructure:"doors"`
	Vents        int    `json:"vents" mapstructure:"vents"`
}

// Defaults for optional fields.
const (
	DefaultSandLayerMM     = 100
	DefaultGravelLayerMM   = 150
	DefaultRebarDiameterMM = 10
	DefaultRebarSpacingMM  = 200
	DefaultColor           = "graphite"
)

// WithDefaults fills optional fields left at their zero value. Required
// dimensions are never defaulted; Validate rejects them instead.
func (s Set) WithDefaults() Set {
	if s.Bracing == "" {
		s.Bracing = BracingSimple
	}
	if s.Foundation == "" {
		s.Foundation = FoundationPosts
	}
	if s.PillarTube == "" {
		s.PillarTube = tube.PillarTable.Default
	}
	if s.TrussTube == "" {
		s.TrussTube = tube.TrussTable.Default
	}
	if s.LathingTube == "" {
		s.LathingTube = tube.LathingTable.Default
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.Foundation == FoundationSlab {
		if s.SandLayerMM <= 0 {
			s.SandLayerMM = DefaultSandLayerMM
		}
		if s.GravelLayerMM <= 0 {
			s.GravelLayerMM = DefaultGravelLayerMM
		}
		if s.RebarDiameterMM <= 0 {
			s.RebarDiameterMM = DefaultRebarDiameterMM
		}
		if s.RebarSpacingMM <= 0 {
			s.RebarSpacingMM = DefaultRebarSpacingMM
		}
	}
	if s.RoofShape == roof.Flat {
		s.RoofHeight = 0
	}
	return s
}

// HalfRoofWidth is half the roof span including the overhang on both sides.
func (s Set) HalfRoofWidth() float64 {
	return (s.Width + 2*s.Overhang) / 2
}

// RoofWidth is the plan width of the roof including both overhangs.
func (s Set) RoofWidth() float64 {
	return s.Width + 2*s.Overhang
}

// Profile is the roof line shared by every truss of the structure.
func (s Set) Profile() roof.Profile {
	return roof.Compute(s.RoofShape, s.HalfRoofWidth(), s.Height, s.RoofHeight)
}

func (f Family) Valid() bool {
	switch f {
	case Canopy, Gazebo, Greenhouse:
		return true
	}
	return false
}

func (b Bracing) Valid() bool {
	switch b {
	case BracingSimple, BracingReinforced, BracingLattice:
		return true
	}
	return false
}

func (f Foundation) Valid() bool {
	switch f {
	case FoundationPosts, FoundationSlab:
		return true
	}
	return false
}
