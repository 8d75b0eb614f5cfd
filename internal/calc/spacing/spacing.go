package spacing

import "math"

const (
	// MinCount is the smallest number of positions any plan produces.
	MinCount = 2
	// MaxCount is the largest. Runs that would need more are capped here, so
	// callers must reject them first when the gap bound matters.
	MaxCount = 10000
)

// Count returns how many evenly spaced positions cover total without any gap
// exceeding maxSpacing, at most MaxCount. It is 0 when spacing is disabled
// (maxSpacing <= 0).
func Count(total, maxSpacing float64) int {
	if maxSpacing <= 0 || total <= 0 {
		return 0
	}
	q := math.Ceil(total / maxSpacing)
	if math.IsNaN(q) || q >= MaxCount {
		return MaxCount
	}
	n := int(q) + 1
	if n < MinCount {
		n = MinCount
	}
	return n
}

// Plan places positions from 0 to total so that no consecutive gap exceeds
// maxSpacing. A non-positive maxSpacing disables the feature and returns nil.
// Runs needing more than MaxCount positions get exactly MaxCount.
func Plan(total, maxSpacing float64) []float64 {
	n := Count(total, maxSpacing)
	if n == 0 {
		return nil
	}
	return PlanByCount(total, n)
}

// PlanByCount places count evenly spaced positions from 0 to total inclusive.
// Counts are clamped to MinCount..MaxCount.
func PlanByCount(total float64, count int) []float64 {
	if total <= 0 {
		return nil
	}
	count = min(max(count, MinCount), MaxCount)
	out := make([]float64, count)
	for i := range out {
		out[i] = total * float64(i) / float64(count-1)
	}
	out[count-1] = total
	return out
}

// Offset shifts every position by origin, returning a new slice.
func Offset(positions []float64, origin float64) []float64 {
	out := make([]float64, len(positions))
	for i, p := range positions {
		out[i] = p + origin
	}
	return out
}

// MaxGap returns the largest distance between consecutive positions.
func MaxGap(positions []float64) float64 {
	var g float64
	for i := 1; i < len(positions); i++ {
		if d := positions[i] - positions[i-1]; d > g {
			g = d
		}
	}
	return g
}
