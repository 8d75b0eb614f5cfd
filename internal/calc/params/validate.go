package params

import (
	"errors"
	"fmt"

	"Pergola/internal/calc/roof"
	"Pergola/internal/calc/spacing"
)

// ErrInvalid wraps every parameter violation reported by Validate.
var ErrInvalid = errors.New("invalid parameters")

// Range is an inclusive bound in metres.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Limits are the accepted dimensions of one structure family.
type Limits struct {
	Width  Range `json:"width"`
	Length Range `json:"length"`
	Height Range `json:"height"`
}

// MaxRunPositions bounds the pillar pairs, trusses and lathing lines of one run.
const MaxRunPositions = 200

var (
	RoofHeightRange = Range{Min: 0.3, Max: 3}
	OverhangRange   = Range{Min: 0, Max: 1.5}
)

// LimitsFor returns the dimension ranges of a family.
func LimitsFor(f Family) Limits {
	switch f {
	case Gazebo:
		return Limits{Width: Range{2, 8}, Length: Range{2, 12}, Height: Range{2, 4}}
	case Greenhouse:
		return Limits{Width: Range{2, 12}, Length: Range{2, 50}, Height: Range{1.5, 4}}
	default:
		return Limits{Width: Range{2, 24}, Length: Range{2, 60}, Height: Range{2, 6}}
	}
}

// Validate checks s against the closed tag sets and family ranges. All
// violations are reported together; the error wraps ErrInvalid.
func Validate(s Set) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !s.Family.Valid() {
		bad("unknown family %q", s.Family)
	}
	if !s.RoofShape.Valid() {
		bad("unknown roof shape %q", s.RoofShape)
	}
	if !s.Bracing.Valid() {
		bad("unknown bracing %q", s.Bracing)
	}
	if !s.Foundation.Valid() {
		bad("unknown foundation %q", s.Foundation)
	}

	lim := LimitsFor(s.Family)
	checkDim := func(name string, v float64, r Range) {
		if v <= 0 {
			bad("%s must be > 0, got %v", name, v)
			return
		}
		if !r.contains(v) {
			bad("%s %v outside %v..%v", name, v, r.Min, r.Max)
		}
	}
	checkDim("width", s.Width, lim.Width)
	checkDim("length", s.Length, lim.Length)
	checkDim("height", s.Height, lim.Height)
	if s.RoofShape != roof.Flat {
		checkDim("roof_height", s.RoofHeight, RoofHeightRange)
	}
	if !OverhangRange.contains(s.Overhang) {
		bad("overhang %v outside %v..%v", s.Overhang, OverhangRange.Min, OverhangRange.Max)
	}

	checkRun := func(name string, count int, step float64) {
		switch {
		case count > 0 && count < 2:
			bad("%s_count must be >= 2, got %d", name, count)
		case count > MaxRunPositions:
			bad("%s_count must be <= %d, got %d", name, MaxRunPositions, count)
		case count == 0 && step <= 0:
			bad("%s_count or %s_spacing required", name, name)
		case count == 0 && spacing.Count(s.Length, step) > MaxRunPositions:
			bad("%s_spacing %v gives more than %d positions", name, step, MaxRunPositions)
		case count < 0:
			bad("%s_count must be >= 2, got %d", name, count)
		}
	}
	checkRun("pillar", s.PillarCount, s.PillarSpacing)
	checkRun("truss", s.TrussCount, s.TrussSpacing)
	if s.LathingStep > 0 && spacing.Count(2*s.HalfRoofWidth(), s.LathingStep) > MaxRunPositions {
		bad("lathing_step %v gives more than %d lathing lines", s.LathingStep, MaxRunPositions)
	}

	if s.Foundation == FoundationSlab {
		if s.SlabThicknessMM <= 0 {
			bad("slab_thickness_mm must be > 0, got %v", s.SlabThicknessMM)
		}
		if s.SlabExtension < 0 {
			bad("slab_extension must be >= 0, got %v", s.SlabExtension)
		}
	}
	if s.Doors < 0 || s.Vents < 0 {
		bad("doors and vents must be >= 0")
	}
	if s.RailingHeight < 0 {
		bad("railing_height must be >= 0, got %v", s.RailingHeight)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
