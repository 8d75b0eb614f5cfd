package spacing

import (
	"math"
	"testing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		total, max float64
		want       int
	}{
		{6, 3, 3},
		{6, 2.9, 4},
		{6, 10, 2},
		{0.5, 0.5, 2},
		{6, 0, 0},
		{6, -1, 0},
		{0, 1, 0},
		{60, 1e-7, MaxCount},
		{4.6, 5e-324, MaxCount},
		{4.6, 4.6 / (MaxCount - 1), MaxCount},
	}
	for _, tt := range tests {
		if got := Count(tt.total, tt.max); got != tt.want {
			t.Errorf("Count(%v, %v) = %d, want %d", tt.total, tt.max, got, tt.want)
		}
	}
}

func TestPlan(t *testing.T) {
	got := Plan(6, 3)
	want := []float64{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("Plan(6, 3) = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Plan(6, 3)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanDisabled(t *testing.T) {
	for _, max := range []float64{0, -0.5} {
		if got := Plan(6, max); got != nil {
			t.Errorf("Plan(6, %v) = %v, want nil", max, got)
		}
	}
}

func TestPlanSpacingBound(t *testing.T) {
	totals := []float64{0.3, 1, 2.5, 4.6, 6, 7.77, 12, 23.9, 60}
	maxes := []float64{0.05, 0.3, 0.6, 1, 1.5, 2.2, 3, 100}
	for _, total := range totals {
		for _, max := range maxes {
			p := Plan(total, max)
			if len(p) < MinCount {
				t.Errorf("Plan(%v, %v): %d positions", total, max, len(p))
				continue
			}
			if p[0] != 0 || p[len(p)-1] != total {
				t.Errorf("Plan(%v, %v): ends %v..%v", total, max, p[0], p[len(p)-1])
			}
			if g := MaxGap(p); g > max+1e-9 {
				t.Errorf("Plan(%v, %v): gap %v exceeds max", total, max, g)
			}
			for i := 1; i < len(p); i++ {
				if p[i] <= p[i-1] {
					t.Errorf("Plan(%v, %v): not increasing at %d", total, max, i)
				}
			}
		}
	}
}

func TestPlanCapped(t *testing.T) {
	tests := []struct {
		name string
		got  []float64
	}{
		{"subnormal spacing", Plan(4.6, 5e-324)},
		{"tiny spacing", Plan(60, 1e-7)},
		{"huge count", PlanByCount(60, 1_000_000_000)},
	}
	for _, tt := range tests {
		if len(tt.got) != MaxCount {
			t.Errorf("%s: %d positions, want %d", tt.name, len(tt.got), MaxCount)
			continue
		}
		if tt.got[0] != 0 || tt.got[MaxCount-1] <= tt.got[MaxCount-2] {
			t.Errorf("%s: bad ends %v, %v", tt.name, tt.got[0], tt.got[MaxCount-2:])
		}
	}
}

func TestPlanByCount(t *testing.T) {
	got := PlanByCount(6, 4)
	want := []float64{0, 2, 4, 6}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("PlanByCount(6, 4)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for _, c := range []int{-3, 0, 1} {
		if got := PlanByCount(5, c); len(got) != 2 || got[0] != 0 || got[1] != 5 {
			t.Errorf("PlanByCount(5, %d) = %v, want [0 5]", c, got)
		}
	}
	if got := PlanByCount(0, 3); got != nil {
		t.Errorf("PlanByCount(0, 3) = %v, want nil", got)
	}
}

func TestOffset(t *testing.T) {
	got := Offset([]float64{0, 1, 2}, -1)
	want := []float64{-1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Offset[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
