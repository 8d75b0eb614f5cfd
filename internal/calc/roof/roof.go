package roof

import "math"

type Shape string

const (
	Gable Shape = "gable"
	Arch  Shape = "arch"
	Shed  Shape = "shed"
	Flat  Shape = "flat"
)

// Shapes is the closed set of supported roof shapes.
var Shapes = []Shape{Gable, Arch, Shed, Flat}

// Valid reports whether s is a supported roof shape.
func (s Shape) Valid() bool {
	switch s {
	case Gable, Arch, Shed, Flat:
		return true
	}
	return false
}

const (
	// ArchSegments is the number of straight segments approximating an arched roof.
	ArchSegments = 12
	// FlatClearance lifts a flat roof above the lower chord so the truss keeps depth.
	FlatClearance = 0.1
)

// Point is a point in the truss cross-section plane: X across the span, Y up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Profile is the roof line of one truss, ordered by increasing X.
type Profile []Point

// Compute returns the roof line for a truss spanning [-halfWidth, +halfWidth] whose
// lower chord sits at pillarHeight. The end points always land on ±halfWidth exactly.
func Compute(shape Shape, halfWidth, pillarHeight, roofHeight float64) Profile {
	var p Profile
	switch shape {
	case Arch:
		p = make(Profile, ArchSegments+1)
		for i := 0; i <= ArchSegments; i++ {
			f := float64(i) / ArchSegments
			p[i] = Point{
				X: -halfWidth + 2*halfWidth*f,
				Y: pillarHeight + roofHeight*math.Sin(math.Pi*f),
			}
		}
		// sin(π) is not exactly zero
		p[ArchSegments].Y = pillarHeight
	case Shed:
		p = Profile{
			{X: -halfWidth, Y: pillarHeight},
			{X: halfWidth, Y: pillarHeight + roofHeight},
		}
	case Flat:
		p = Profile{
			{X: -halfWidth, Y: pillarHeight + FlatClearance},
			{X: halfWidth, Y: pillarHeight + FlatClearance},
		}
	default:
		p = Profile{
			{X: -halfWidth, Y: pillarHeight},
			{X: 0, Y: pillarHeight + roofHeight},
			{X: halfWidth, Y: pillarHeight},
		}
	}
	p[0].X = -halfWidth
	p[len(p)-1].X = halfWidth
	return p
}

// At returns the point at normalized parameter t along the polyline, where each
// segment covers an equal share of [0, 1].
func (p Profile) At(t float64) Point {
	if len(p) == 0 {
		return Point{}
	}
	if t <= 0 {
		return p[0]
	}
	if t >= 1 {
		return p[len(p)-1]
	}
	f := t * float64(len(p)-1)
	i := int(math.Floor(f))
	if i >= len(p)-1 {
		return p[len(p)-1]
	}
	return lerp(p[i], p[i+1], f-float64(i))
}

// HeightAt interpolates the roof height above x. ok is false when x lies outside
// the profile.
func (p Profile) HeightAt(x float64) (y float64, ok bool) {
	for i := 0; i+1 < len(p); i++ {
		a, b := p[i], p[i+1]
		if x < a.X || x > b.X {
			continue
		}
		if b.X == a.X {
			return math.Max(a.Y, b.Y), true
		}
		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X), true
	}
	return 0, false
}

// Length is the developed length of the roof line.
func (p Profile) Length() float64 {
	var l float64
	for i := 0; i+1 < len(p); i++ {
		l += math.Hypot(p[i+1].X-p[i].X, p[i+1].Y-p[i].Y)
	}
	return l
}

// AreaAbove returns the area enclosed between the profile and the horizontal line
// y = base, used for greenhouse end walls.
func (p Profile) AreaAbove(base float64) float64 {
	var a float64
	for i := 0; i+1 < len(p); i++ {
		w := p[i+1].X - p[i].X
		a += w * ((p[i].Y - base) + (p[i+1].Y - base)) / 2
	}
	return a
}

// SurfaceFactor is the ratio of developed roof width to plan width. Arches use
// Ramanujan's ellipse perimeter approximation instead of the 12-segment polyline.
func SurfaceFactor(shape Shape, halfWidth, roofHeight float64) float64 {
	if halfWidth <= 0 {
		return 1
	}
	switch shape {
	case Gable:
		return math.Hypot(halfWidth, roofHeight) / halfWidth
	case Shed:
		return math.Hypot(2*halfWidth, roofHeight) / (2 * halfWidth)
	case Arch:
		a, b := halfWidth, roofHeight
		if b <= 0 {
			return 1
		}
		h := (a - b) * (a - b) / ((a + b) * (a + b))
		perimeter := math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
		return perimeter / 2 / (2 * halfWidth)
	default:
		return 1
	}
}

func lerp(a, b Point, f float64) Point {
	return Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
}
