package roof

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestComputePointCounts(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Gable, 3},
		{Arch, 13},
		{Shed, 2},
		{Flat, 2},
	}
	for _, tt := range tests {
		if got := len(Compute(tt.shape, 2.3, 3, 1)); got != tt.want {
			t.Errorf("%s: %d points, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestComputeEdgeAnchoring(t *testing.T) {
	for _, shape := range Shapes {
		for _, hw := range []float64{0.7, 1, 2.3, 3.1415, 12.6} {
			p := Compute(shape, hw, 2.5, 0.8)
			if p[0].X != -hw || p[len(p)-1].X != hw {
				t.Errorf("%s hw=%v: edges %v..%v", shape, hw, p[0].X, p[len(p)-1].X)
			}
			for i := 1; i < len(p); i++ {
				if p[i].X <= p[i-1].X {
					t.Errorf("%s hw=%v: x not increasing at %d", shape, hw, i)
				}
			}
		}
	}
}

func TestComputeGable(t *testing.T) {
	p := Compute(Gable, 2, 3, 1)
	want := Profile{{-2, 3}, {0, 4}, {2, 3}}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, p[i], want[i])
		}
	}
}

func TestComputeArch(t *testing.T) {
	p := Compute(Arch, 3, 2, 1.5)
	if math.Abs(p[6].X) > eps || math.Abs(p[6].Y-3.5) > eps {
		t.Errorf("apex = %+v, want (0, 3.5)", p[6])
	}
	if p[0].Y != 2 || p[12].Y != 2 {
		t.Errorf("arch feet at %v and %v, want 2", p[0].Y, p[12].Y)
	}
	for i := 0; i < 6; i++ {
		if math.Abs(p[i].Y-p[12-i].Y) > eps {
			t.Errorf("arch not symmetric at %d: %v vs %v", i, p[i].Y, p[12-i].Y)
		}
	}
}

func TestComputeShedAndFlat(t *testing.T) {
	s := Compute(Shed, 1.5, 2, 0.6)
	if s[0].Y != 2 || s[1].Y != 2.6 {
		t.Errorf("shed = %+v", s)
	}
	f := Compute(Flat, 1.5, 2, 0.6)
	if f[0].Y != 2+FlatClearance || f[1].Y != 2+FlatClearance {
		t.Errorf("flat = %+v", f)
	}
}

func TestAt(t *testing.T) {
	p := Compute(Gable, 2, 3, 1)
	tests := []struct {
		t    float64
		want Point
	}{
		{-1, Point{-2, 3}},
		{0, Point{-2, 3}},
		{0.25, Point{-1, 3.5}},
		{0.5, Point{0, 4}},
		{0.75, Point{1, 3.5}},
		{1, Point{2, 3}},
		{2, Point{2, 3}},
	}
	for _, tt := range tests {
		got := p.At(tt.t)
		if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
			t.Errorf("At(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
	if got := (Profile{}).At(0.5); got != (Point{}) {
		t.Errorf("empty profile At = %+v", got)
	}
}

func TestHeightAt(t *testing.T) {
	p := Compute(Gable, 2, 3, 1)
	tests := []struct {
		x      float64
		want   float64
		wantOK bool
	}{
		{-2, 3, true},
		{-1, 3.5, true},
		{0, 4, true},
		{1.5, 3.25, true},
		{2, 3, true},
		{-2.01, 0, false},
		{5, 0, false},
	}
	for _, tt := range tests {
		got, ok := p.HeightAt(tt.x)
		if ok != tt.wantOK || math.Abs(got-tt.want) > eps {
			t.Errorf("HeightAt(%v) = %v, %v; want %v, %v", tt.x, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLengthAndArea(t *testing.T) {
	p := Compute(Gable, 3, 2, 4)
	if got := p.Length(); math.Abs(got-10) > eps {
		t.Errorf("Length = %v, want 10", got)
	}
	if got := p.AreaAbove(2); math.Abs(got-12) > eps {
		t.Errorf("AreaAbove = %v, want 12", got)
	}
	if got := Compute(Flat, 1, 2, 0).AreaAbove(2); math.Abs(got-2*FlatClearance) > eps {
		t.Errorf("flat AreaAbove = %v", got)
	}
}

func TestSurfaceFactor(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		hw    float64
		rh    float64
		want  float64
	}{
		{"flat", Flat, 2, 1, 1},
		{"gable 3-4-5", Gable, 4, 3, 1.25},
		{"shed 3-4-5", Shed, 2, 3, 1.25},
		{"semicircle", Arch, 2, 2, math.Pi / 2},
		{"arch zero rise", Arch, 2, 0, 1},
		{"zero width", Gable, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := SurfaceFactor(tt.shape, tt.hw, tt.rh); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: SurfaceFactor = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShapeValid(t *testing.T) {
	for _, s := range Shapes {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Shape("dome").Valid() {
		t.Error("dome should not be valid")
	}
}
