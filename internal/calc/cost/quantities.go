package cost

import (
	"math"

	"Pergola/internal/calc/params"
	"Pergola/internal/calc/roof"
)

const (
	// SteelDensity in kg/m³.
	SteelDensity = 7850.0
	// RailingEntrance is the gap left in a gazebo railing for the entrance, in metres.
	RailingEntrance = 1.2
)

// RoofArea is the developed roof covering area in m². It depends only on the
// dimensions and roof shape, never on the generated members.
func RoofArea(p params.Set) float64 {
	return p.RoofWidth() * roof.SurfaceFactor(p.RoofShape, p.HalfRoofWidth(), p.RoofHeight) * p.Length
}

// SlabArea is the plan area of a slab foundation extended past the walls.
func SlabArea(p params.Set) float64 {
	return (p.Width + 2*p.SlabExtension) * (p.Length + 2*p.SlabExtension)
}

// SlabVolume is the concrete volume of the slab in m³.
func SlabVolume(p params.Set) float64 {
	return SlabArea(p) * p.SlabThicknessMM / 1000
}

// RebarMass is the steel mass of a two-layer mesh laid in both directions.
func RebarMass(p params.Set) float64 {
	d := p.RebarDiameterMM / 1000
	s := p.RebarSpacingMM / 1000
	if d <= 0 || s <= 0 {
		return 0
	}
	barArea := math.Pi * d * d / 4.0
	perM2 := 2 * 2 * barArea / s * SteelDensity
	return SlabArea(p) * perM2
}

// BeddingVolumes are the sand and gravel volumes under the slab in m³.
func BeddingVolumes(p params.Set) (sand, gravel float64) {
	a := SlabArea(p)
	return a * p.SandLayerMM / 1000, a * p.GravelLayerMM / 1000
}

// WallArea is the greenhouse cladding: both long sides plus both gable ends
// including the part under the roof line.
func WallArea(p params.Set) float64 {
	sides := 2 * p.Length * p.Height
	gable := roof.Compute(p.RoofShape, p.Width/2, p.Height, p.RoofHeight).AreaAbove(p.Height)
	ends := 2 * (p.Width*p.Height + gable)
	return sides + ends
}

// RailingLength is the gazebo perimeter minus the entrance.
func RailingLength(p params.Set) float64 {
	return math.Max(0, 2*(p.Width+p.Length)-RailingEntrance)
}
