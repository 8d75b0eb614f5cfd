package frame

import (
	"math"

	"Pergola/internal/calc/params"
	"Pergola/internal/calc/tube"
)

// Point3 is a point in structure space: X across the span (0 on the centre line),
// Y up from the ground, Z along the length.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Kind string

const (
	KindPillar     Kind = "pillar"
	KindRoofChord  Kind = "roof-chord"
	KindLowerChord Kind = "lower-chord"
	KindVertical   Kind = "truss-vertical"
	KindDiagonal   Kind = "truss-diagonal"
	KindEndPost    Kind = "end-post"
	KindCrossBeam  Kind = "cross-beam"
	KindRidge      Kind = "ridge-beam"
	KindLathing    Kind = "lathing"
)

// Kinds lists every member kind in generation order.
var Kinds = []Kind{
	KindPillar, KindRoofChord, KindLowerChord, KindVertical, KindDiagonal,
	KindEndPost, KindCrossBeam, KindRidge, KindLathing,
}

// Class groups kinds that share a tube section and a price.
type Class string

const (
	ClassPillar    Class = "pillar"
	ClassRoofChord Class = "roof-chord"
	ClassTruss     Class = "truss"
	ClassLathing   Class = "lathing"
)

// Classes lists member classes in report order.
var Classes = []Class{ClassPillar, ClassRoofChord, ClassTruss, ClassLathing}

func (k Kind) Class() Class {
	switch k {
	case KindPillar:
		return ClassPillar
	case KindRoofChord, KindCrossBeam, KindRidge:
		return ClassRoofChord
	case KindLathing:
		return ClassLathing
	default:
		return ClassTruss
	}
}

// Table is the tube table the class draws its section from.
func (c Class) Table() tube.Table {
	switch c {
	case ClassPillar:
		return tube.PillarTable
	case ClassLathing:
		return tube.LathingTable
	default:
		return tube.TrussTable
	}
}

// SectionLabel is the nominal tube label used for class c, after falling back
// to the class default for unknown labels.
func SectionLabel(p params.Set, c Class) string {
	var label string
	switch c {
	case ClassPillar:
		label = p.PillarTube
	case ClassLathing:
		label = p.LathingTube
	default:
		label = p.TrussTube
	}
	return tube.Label(label, c.Table())
}

// Beam is one straight structural member. Truss is the index of the truss the
// member belongs to, or -1 for members outside any truss.
type Beam struct {
	Start    Point3         `json:"start"`
	End      Point3         `json:"end"`
	Section  tube.Dimension `json:"section"`
	Rotation float64        `json:"rotation"`
	Color    string         `json:"color"`
	Kind     Kind           `json:"kind"`
	Truss    int            `json:"truss"`
}

func (b Beam) Length() float64 {
	dx := b.End.X - b.Start.X
	dy := b.End.Y - b.Start.Y
	dz := b.End.Z - b.Start.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// CountByKind counts members per kind.
func CountByKind(beams []Beam) map[Kind]int {
	out := make(map[Kind]int)
	for _, b := range beams {
		out[b.Kind]++
	}
	return out
}

// ByTruss groups truss members by truss index. Members outside trusses are skipped.
func ByTruss(beams []Beam) map[int][]Beam {
	out := make(map[int][]Beam)
	for _, b := range beams {
		if b.Truss < 0 {
			continue
		}
		out[b.Truss] = append(out[b.Truss], b)
	}
	return out
}

// LengthByClass sums member lengths per class.
func LengthByClass(beams []Beam) map[Class]float64 {
	out := make(map[Class]float64)
	for _, b := range beams {
		out[b.Kind.Class()] += b.Length()
	}
	return out
}
