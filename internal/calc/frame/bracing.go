package frame

import "Pergola/internal/calc/params"

// BracingStyle is the diagonal pattern inside a truss. It is chosen once per
// truss and yields the diagonals for every panel at once.
type BracingStyle int

const (
	SimpleBracing BracingStyle = iota
	ReinforcedBracing
	LatticeBracing
)

// Diagonal spans panel i between stations i and i+1. A rising diagonal runs from
// the lower chord at station i to the roof at station i+1; a falling one runs
// from the roof at station i down to the lower chord at station i+1.
type Diagonal struct {
	Panel  int
	Rising bool
}

func bracingFor(b params.Bracing) BracingStyle {
	switch b {
	case params.BracingReinforced:
		return ReinforcedBracing
	case params.BracingLattice:
		return LatticeBracing
	default:
		return SimpleBracing
	}
}

func (s BracingStyle) String() string {
	switch s {
	case ReinforcedBracing:
		return string(params.BracingReinforced)
	case LatticeBracing:
		return string(params.BracingLattice)
	default:
		return string(params.BracingSimple)
	}
}

// Diagonals lists the diagonals for a truss with the given number of panels.
// Simple trusses have none, reinforced ones lean the same way in every panel and
// lattice trusses alternate so neighbouring diagonals meet in a V.
func (s BracingStyle) Diagonals(panels int) []Diagonal {
	switch s {
	case ReinforcedBracing:
		out := make([]Diagonal, panels)
		for i := range out {
			out[i] = Diagonal{Panel: i, Rising: true}
		}
		return out
	case LatticeBracing:
		out := make([]Diagonal, panels)
		for i := range out {
			out[i] = Diagonal{Panel: i, Rising: i%2 == 0}
		}
		return out
	default:
		return nil
	}
}
