package pathkit

import (
	"math"
	"testing"
)

func TestStrokeBoundsGrowByHalfWidth(t *testing.T) {
	base := NewShape().Rect(0, 0, 10, 10)
	out := base.Stroke(StrokeOptions{Width: 2, Join: LineJoinMiter, MiterLimit: 4})

	b := out.Bounds()
	want := Box{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}
	const tol = 1e-6
	if math.Abs(b.MinX-want.MinX) > tol || math.Abs(b.MinY-want.MinY) > tol ||
		math.Abs(b.MaxX-want.MaxX) > tol || math.Abs(b.MaxY-want.MaxY) > tol {
		t.Errorf("stroked bounds = %v, want %v", b, want)
	}
}

func TestStrokeCoversCenterline(t *testing.T) {
	base := NewShape().MoveTo(0, 0).LineTo(10, 0)
	out := base.Stroke(StrokeOptions{Width: 2, Cap: LineCapButt})

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"near the centerline", Pt(5, 0.0001), true},
		{"inside the half width", Pt(5, 0.9), true},
		{"outside the half width", Pt(5, 1.5), false},
		{"past the butt cap", Pt(11, 0), false},
		{"before the start", Pt(-1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := out.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestStrokeCaps(t *testing.T) {
	base := NewShape().MoveTo(0, 0).LineTo(10, 0)

	square := base.Stroke(StrokeOptions{Width: 2, Cap: LineCapSquare})
	if !square.ContainsPoint(Pt(10.9, 0.9)) {
		t.Error("square cap does not cover its corner")
	}

	round := base.Stroke(StrokeOptions{Width: 2, Cap: LineCapRound})
	if !round.ContainsPoint(Pt(10.7, 0)) {
		t.Error("round cap does not cover the cap apex")
	}
	if round.ContainsPoint(Pt(10.9, 0.9)) {
		t.Error("round cap covers the square-cap corner")
	}
}

func TestStrokeClosedMakesRing(t *testing.T) {
	base := NewShape().Circle(0, 0, 5)
	out := base.Stroke(StrokeOptions{Width: 1, Join: LineJoinRound})

	if !out.ContainsPoint(Pt(5, 0)) {
		t.Error("ring does not cover the centerline")
	}
	if out.ContainsPoint(Pt(0, 0)) {
		t.Error("ring covers the circle center")
	}
	if out.ContainsPoint(Pt(6, 0)) {
		t.Error("ring extends past the outer edge")
	}
	if !out.ContainsPoint(Pt(4.8, 0)) {
		t.Error("ring misses the inner band")
	}

	// Ring area approximates 2*pi*r*width.
	got := math.Abs(out.Area())
	want := 2 * math.Pi * 5 * 1
	if math.Abs(got-want)/want > 0.05 {
		t.Errorf("ring area = %v, want about %v", got, want)
	}
}

func TestStrokeDegenerateInputs(t *testing.T) {
	if out := NewShape().Stroke(StrokeOptions{Width: 1}); len(out.Subpaths()) != 0 {
		t.Error("stroking an empty shape produced subpaths")
	}
	if out := NewShape().Rect(0, 0, 1, 1).Stroke(StrokeOptions{Width: 0}); len(out.Subpaths()) != 0 {
		t.Error("zero width stroke produced subpaths")
	}
	if out := NewShape().MoveTo(3, 3).Stroke(StrokeOptions{Width: 1}); len(out.Subpaths()) != 0 {
		t.Error("stroking a bare move produced subpaths")
	}
}

func TestStrokeMiterLimit(t *testing.T) {
	// A sharp V exceeds miter limit 2 and falls back to bevel; a
	// generous limit keeps the spike.
	v := NewShape().MoveTo(0, 2).LineTo(10, 0).LineTo(0, -2)

	spiky := v.Stroke(StrokeOptions{Width: 2, Join: LineJoinMiter, MiterLimit: 10})
	blunt := v.Stroke(StrokeOptions{Width: 2, Join: LineJoinMiter, MiterLimit: 2})

	if spiky.Bounds().MaxX <= blunt.Bounds().MaxX {
		t.Errorf("miter spike (%v) not longer than beveled join (%v)",
			spiky.Bounds().MaxX, blunt.Bounds().MaxX)
	}
}
