package pathkit

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Point
		want Point
	}{
		{"add", Pt(1, 2).Add(Pt(3, -4)), Pt(4, -2)},
		{"sub", Pt(1, 2).Sub(Pt(3, -4)), Pt(-2, 6)},
		{"mul", Pt(1.5, -2).Mul(2), Pt(3, -4)},
		{"div", Pt(3, -4).Div(2), Pt(1.5, -2)},
		{"neg", Pt(3, -4).Neg(), Pt(-3, 4)},
		{"perp", Pt(1, 0).Perp(), Pt(0, 1)},
		{"lerp mid", Pt(0, 0).Lerp(Pt(10, 20), 0.5), Pt(5, 10)},
		{"lerp ends", Pt(2, 3).Lerp(Pt(7, 9), 0), Pt(2, 3)},
		{"midpoint", Pt(0, 0).Midpoint(Pt(4, 6)), Pt(2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPointProducts(t *testing.T) {
	a, b := Pt(3, 4), Pt(-4, 3)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot of perpendicular vectors = %v, want 0", got)
	}
	if got := a.Cross(b); got != 25 {
		t.Errorf("Cross = %v, want 25", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %v, want 25", got)
	}
	if got := a.Distance(Pt(0, 0)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestPointNormalize(t *testing.T) {
	n := Pt(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	// The zero vector normalizes to itself rather than NaN.
	if got := Pt(0, 0).Normalize(); got != Pt(0, 0) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}

func TestPointRotate(t *testing.T) {
	got := Pt(1, 0).Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("Rotate(pi/2) = %v, want (0,1)", got)
	}
}

func TestPointAngleTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"quarter turn ccw", Pt(1, 0), Pt(0, 1), math.Pi / 2},
		{"quarter turn cw", Pt(0, 1), Pt(1, 0), -math.Pi / 2},
		{"no turn", Pt(2, 2), Pt(5, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.AngleTo(tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AngleTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	for _, p := range []Point{
		Pt(math.NaN(), 0),
		Pt(0, math.Inf(1)),
		Pt(math.Inf(-1), math.NaN()),
	} {
		if p.IsFinite() {
			t.Errorf("%v reported finite", p)
		}
	}
}
