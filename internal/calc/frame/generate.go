package frame

import (
	"math"

	"Pergola/internal/calc/params"
	"Pergola/internal/calc/roof"
	"Pergola/internal/calc/spacing"
	"Pergola/internal/calc/tube"
)

const (
	// VerticalsPerTruss is the number of posts between the lower chord and the roof line.
	VerticalsPerTruss = 8
	// DiagonalRotation turns diagonals about their long axis relative to verticals.
	DiagonalRotation = math.Pi / 4
)

// Generate builds every structural member for a validated parameter set. Members
// come out in a fixed order: pillars, trusses one by one, cross beams, lathing.
func Generate(p params.Set) []Beam {
	g := generator{
		p:        p,
		pillar:   tube.Resolve(p.PillarTube, tube.PillarTable),
		truss:    tube.Resolve(p.TrussTube, tube.TrussTable),
		lathing:  tube.Resolve(p.LathingTube, tube.LathingTable),
		bracing:  bracingFor(p.Bracing),
		halfRoof: p.HalfRoofWidth(),
	}
	return g.run()
}

type generator struct {
	p        params.Set
	pillar   tube.Dimension
	truss    tube.Dimension
	lathing  tube.Dimension
	bracing  BracingStyle
	halfRoof float64

	beams []Beam
}

func (g *generator) run() []Beam {
	g.pillars()

	zs := TrussPositions(g.p)
	profiles := make([]roof.Profile, len(zs))
	for i, z := range zs {
		profiles[i] = g.p.Profile()
		g.trussAt(i, z, profiles[i])
	}
	g.crossBeams(zs)
	if len(profiles) > 0 {
		g.lathingOver(profiles[0], profiles[len(profiles)-1], zs[0], zs[len(zs)-1])
	}
	return g.beams
}

func (g *generator) add(kind Kind, truss int, sec tube.Dimension, rot float64, a, b Point3) {
	g.beams = append(g.beams, Beam{
		Start:    a,
		End:      b,
		Section:  sec,
		Rotation: rot,
		Color:    g.p.Color,
		Kind:     kind,
		Truss:    truss,
	})
}

// PillarPositions are the z positions of the pillar pairs.
func PillarPositions(p params.Set) []float64 {
	return layout(p.Length, p.PillarCount, p.PillarSpacing)
}

// TrussPositions are the z positions of the trusses.
func TrussPositions(p params.Set) []float64 {
	return layout(p.Length, p.TrussCount, p.TrussSpacing)
}

func layout(total float64, count int, step float64) []float64 {
	if count > 0 {
		return spacing.PlanByCount(total, count)
	}
	return spacing.Plan(total, step)
}

func (g *generator) pillars() {
	x := g.p.Width / 2
	for _, z := range PillarPositions(g.p) {
		g.add(KindPillar, -1, g.pillar, 0, Point3{-x, 0, z}, Point3{-x, g.p.Height, z})
		g.add(KindPillar, -1, g.pillar, 0, Point3{x, 0, z}, Point3{x, g.p.Height, z})
	}
}

func (g *generator) trussAt(idx int, z float64, prof roof.Profile) {
	h := g.p.Height
	hw := g.halfRoof

	for i := 0; i+1 < len(prof); i++ {
		g.add(KindRoofChord, idx, g.truss, 0,
			Point3{prof[i].X, prof[i].Y, z}, Point3{prof[i+1].X, prof[i+1].Y, z})
	}
	g.add(KindLowerChord, idx, g.truss, 0, Point3{-hw, h, z}, Point3{hw, h, z})

	// stations 0 and VerticalsPerTruss+1 are the roof edges
	stations := make([]roof.Point, VerticalsPerTruss+2)
	for i := range stations {
		stations[i] = prof.At(float64(i) / float64(VerticalsPerTruss+1))
	}
	for i := 1; i <= VerticalsPerTruss; i++ {
		top := stations[i]
		g.add(KindVertical, idx, g.truss, 0, Point3{top.X, h, z}, Point3{top.X, top.Y, z})
	}

	for _, d := range g.bracing.Diagonals(len(stations) - 1) {
		l, r := stations[d.Panel], stations[d.Panel+1]
		if d.Rising {
			g.add(KindDiagonal, idx, g.truss, DiagonalRotation, Point3{l.X, h, z}, Point3{r.X, r.Y, z})
		} else {
			g.add(KindDiagonal, idx, g.truss, DiagonalRotation, Point3{l.X, l.Y, z}, Point3{r.X, h, z})
		}
	}

	inset := hw - g.truss.Thickness/2
	for _, x := range []float64{-inset, inset} {
		y, ok := prof.HeightAt(x)
		if !ok {
			y = h
		}
		g.add(KindEndPost, idx, g.truss, 0, Point3{x, h, z}, Point3{x, y, z})
	}
}

func (g *generator) crossBeams(zs []float64) {
	h := g.p.Height
	hw := g.halfRoof
	for i := 0; i+1 < len(zs); i++ {
		a, b := zs[i], zs[i+1]
		g.add(KindCrossBeam, -1, g.truss, 0, Point3{-hw, h, a}, Point3{-hw, h, b})
		g.add(KindCrossBeam, -1, g.truss, 0, Point3{hw, h, a}, Point3{hw, h, b})
		if g.p.RoofShape == roof.Gable {
			top := h + g.p.RoofHeight
			g.add(KindRidge, -1, g.truss, 0, Point3{0, top, a}, Point3{0, top, b})
		}
	}
}

// lathingOver lays lathing across the roof. Heights come from the first and last
// truss profiles only, so each lathing runs straight from end to end.
func (g *generator) lathingOver(first, last roof.Profile, z0, z1 float64) {
	for _, x := range LathingPositions(g.p) {
		y0 := heightOr(first, x, g.p.Height)
		y1 := heightOr(last, x, g.p.Height)
		g.add(KindLathing, -1, g.lathing, 0, Point3{x, y0, z0}, Point3{x, y1, z1})
	}
}

func heightOr(p roof.Profile, x, fallback float64) float64 {
	if y, ok := p.HeightAt(x); ok {
		return y
	}
	return fallback
}

// LathingPositions are the x positions of the lathing members, nil when disabled.
func LathingPositions(p params.Set) []float64 {
	if p.LathingStep <= 0 {
		return nil
	}
	hw := p.HalfRoofWidth()
	return spacing.Offset(spacing.Plan(2*hw, p.LathingStep), -hw)
}
