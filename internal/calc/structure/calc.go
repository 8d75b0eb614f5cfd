package structure

import (
	"fmt"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/frame"
	"Pergola/internal/calc/params"
)

// Result is everything a renderer or report needs for one parameter set.
type Result struct {
	Params  params.Set          `json:"params"`
	Members []frame.Beam        `json:"members"`
	Counts  map[frame.Kind]int  `json:"counts"`
	Takeoff []frame.TakeoffLine `json:"takeoff"`
	Cost    cost.Breakdown      `json:"cost"`
	Notes   string              `json:"notes"`
}

// Generator produces the member list for a validated parameter set.
// *frame.Cache satisfies it.
type Generator interface {
	Generate(p params.Set) []frame.Beam
}

type generateFunc func(params.Set) []frame.Beam

func (f generateFunc) Generate(p params.Set) []frame.Beam { return f(p) }

// Direct generates without memoization.
var Direct Generator = generateFunc(frame.Generate)

// Prepare fills defaults and rejects parameters outside their ranges.
func Prepare(in params.Set) (params.Set, error) {
	p := in.WithDefaults()
	if err := params.Validate(p); err != nil {
		return params.Set{}, err
	}
	return p, nil
}

// Generate validates in and returns the members only, without pricing.
func Generate(g Generator, in params.Set) (Result, error) {
	p, err := Prepare(in)
	if err != nil {
		return Result{}, err
	}
	beams := g.Generate(p)
	return Result{
		Params:  p,
		Members: beams,
		Counts:  frame.CountByKind(beams),
		Takeoff: frame.Takeoff(p, beams),
		Notes:   notes(p, beams),
	}, nil
}

// Calculate runs the whole pipeline: defaults, validation, generation and
// the cost estimate against prices.
func Calculate(g Generator, in params.Set, prices cost.PriceTable) (Result, error) {
	res, err := Generate(g, in)
	if err != nil {
		return Result{}, err
	}
	res.Cost = cost.Estimate(res.Members, prices, res.Params)
	return res, nil
}

func notes(p params.Set, beams []frame.Beam) string {
	n := frame.CountByKind(beams)
	trusses := len(frame.TrussPositions(p))
	return fmt.Sprintf("%s, %s roof, %s bracing: %d pillars, %d trusses, %d lathing members, %d members total",
		p.Family, p.RoofShape, p.Bracing, n[frame.KindPillar], trusses, n[frame.KindLathing], len(beams))
}
