package pathkit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSegmentEndpoints(t *testing.T) {
	segs := []struct {
		name string
		seg  Segment
	}{
		{"line", NewLine(Pt(1, 2), Pt(3, -4))},
		{"quad", NewQuad(Pt(0, 0), Pt(5, 5), Pt(10, 0))},
		{"cubic", NewCubic(Pt(0, 0), Pt(1, 3), Pt(4, 3), Pt(5, 0))},
		{"arc", NewArc(Pt(2, 2), 3, 0, math.Pi/2, false)},
		{"elliptical arc", NewEllipticalArc(Pt(0, 0), 4, 2, math.Pi/6, 0.3, 2.1, false)},
	}
	for _, tt := range segs {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.seg.Start(), tt.seg.Eval(0), approx); diff != "" {
				t.Errorf("Start() != Eval(0):\n%s", diff)
			}
			if diff := cmp.Diff(tt.seg.End(), tt.seg.Eval(1), approx); diff != "" {
				t.Errorf("End() != Eval(1):\n%s", diff)
			}
		})
	}
}

func TestSegmentBoundsContainSamples(t *testing.T) {
	segs := []struct {
		name string
		seg  Segment
	}{
		{"quad", NewQuad(Pt(0, 0), Pt(5, 10), Pt(10, 0))},
		{"cubic", NewCubic(Pt(0, 0), Pt(-3, 4), Pt(13, 4), Pt(10, 0))},
		{"arc", NewArc(Pt(0, 0), 5, math.Pi/4, 3*math.Pi/2, false)},
		{"elliptical arc", NewEllipticalArc(Pt(1, 1), 6, 2, 0.7, -0.5, 4.0, false)},
		{"reversed arc", NewArc(Pt(0, 0), 5, math.Pi, 0, true)},
	}
	const tol = 1e-9
	for _, tt := range segs {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.seg.Bounds()
			for i := 0; i <= 100; i++ {
				p := tt.seg.Eval(float64(i) / 100)
				if p.X < b.MinX-tol || p.X > b.MaxX+tol ||
					p.Y < b.MinY-tol || p.Y > b.MaxY+tol {
					t.Fatalf("Eval(%v) = %v outside bounds %v", float64(i)/100, p, b)
				}
			}
		})
	}
}

func TestArcBoundsTight(t *testing.T) {
	// A full circle's bounds are the circumscribing square.
	full := NewArc(Pt(3, -1), 2, 0, 2*math.Pi, false)
	want := Box{MinX: 1, MinY: -3, MaxX: 5, MaxY: 1}
	if diff := cmp.Diff(want, full.Bounds(), approx); diff != "" {
		t.Errorf("full circle bounds (-want +got):\n%s", diff)
	}

	// A quarter arc's bounds touch only the swept quadrant.
	quarter := NewArc(Pt(0, 0), 1, 0, math.Pi/2, false)
	want = Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	if diff := cmp.Diff(want, quarter.Bounds(), approx); diff != "" {
		t.Errorf("quarter arc bounds (-want +got):\n%s", diff)
	}
}

func TestSegmentLength(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want float64
	}{
		{"line 3-4-5", NewLine(Pt(0, 0), Pt(3, 4)), 5},
		{"half circle r=2", NewArc(Pt(0, 0), 2, 0, math.Pi, false), 2 * math.Pi},
		{"degenerate quad", NewQuad(Pt(0, 0), Pt(1, 0), Pt(2, 0)), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.seg.Length(1e-9)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentReverse(t *testing.T) {
	segs := []Segment{
		NewLine(Pt(1, 2), Pt(3, 4)),
		NewQuad(Pt(0, 0), Pt(2, 4), Pt(5, 1)),
		NewCubic(Pt(0, 0), Pt(1, 1), Pt(2, -1), Pt(3, 0)),
		NewArc(Pt(0, 0), 3, 0.2, 1.9, false),
		NewEllipticalArc(Pt(1, 0), 3, 1, 0.4, 0.1, 2.5, false),
	}
	for _, seg := range segs {
		r := seg.Reverse()
		if diff := cmp.Diff(seg.Start(), r.End(), approx); diff != "" {
			t.Errorf("%T: reversed end != start:\n%s", seg, diff)
		}
		if diff := cmp.Diff(seg.End(), r.Start(), approx); diff != "" {
			t.Errorf("%T: reversed start != end:\n%s", seg, diff)
		}
		// Reversal flips orientation but traces the same locus.
		mid := seg.Eval(0.25)
		if diff := cmp.Diff(mid, r.Eval(0.75), approx); diff != "" {
			t.Errorf("%T: Eval(0.25) != reversed Eval(0.75):\n%s", seg, diff)
		}
	}
}

func TestEndpointArcMatchesCenterArc(t *testing.T) {
	// Equal radii and zero rotation: the endpoint parameterization
	// must reproduce a plain circular arc.
	center := Pt(5, 5)
	const r = 5.0
	direct := NewArc(center, r, math.Pi, math.Pi/2, true)
	start, end := direct.Start(), direct.End()

	got, ok := arcFromEndpoints(start, end, r, r, 0, false, direct.SweepAngle > 0)
	if !ok {
		t.Fatal("arcFromEndpoints failed")
	}
	if diff := cmp.Diff(center, got.Center, approx); diff != "" {
		t.Errorf("center (-want +got):\n%s", diff)
	}
	if math.Abs(got.Rx-r) > 1e-9 || math.Abs(got.Ry-r) > 1e-9 {
		t.Errorf("radii = (%v, %v), want %v", got.Rx, got.Ry, r)
	}
	for i := 0; i <= 20; i++ {
		u := float64(i) / 20
		if diff := cmp.Diff(direct.Eval(u), got.Eval(u), approx); diff != "" {
			t.Errorf("Eval(%v) (-want +got):\n%s", u, diff)
		}
	}
}

func TestEndpointArcScalesShortRadii(t *testing.T) {
	// Endpoints 10 apart cannot be spanned by radius 2; both radii
	// scale up uniformly and the arc still hits both endpoints.
	start, end := Pt(0, 0), Pt(10, 0)
	arc, ok := arcFromEndpoints(start, end, 2, 2, 0, false, true)
	if !ok {
		t.Fatal("arcFromEndpoints failed")
	}
	if arc.Rx < 5 {
		t.Errorf("Rx = %v, want >= 5 after scale-up", arc.Rx)
	}
	if diff := cmp.Diff(start, arc.Start(), approx); diff != "" {
		t.Errorf("start (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(end, arc.End(), approx); diff != "" {
		t.Errorf("end (-want +got):\n%s", diff)
	}
}

func TestEndpointArcFlagCombinations(t *testing.T) {
	start, end := Pt(0, 0), Pt(4, 0)
	for _, largeArc := range []bool{false, true} {
		for _, sweep := range []bool{false, true} {
			arc, ok := arcFromEndpoints(start, end, 3, 3, 0, largeArc, sweep)
			if !ok {
				t.Fatalf("largeArc=%v sweep=%v: conversion failed", largeArc, sweep)
			}
			if diff := cmp.Diff(start, arc.Start(), approx); diff != "" {
				t.Errorf("largeArc=%v sweep=%v start:\n%s", largeArc, sweep, diff)
			}
			if diff := cmp.Diff(end, arc.End(), approx); diff != "" {
				t.Errorf("largeArc=%v sweep=%v end:\n%s", largeArc, sweep, diff)
			}
			if sweep != (arc.SweepAngle > 0) {
				t.Errorf("largeArc=%v sweep=%v: delta %v has wrong sign",
					largeArc, sweep, arc.SweepAngle)
			}
			if largeArc != (math.Abs(arc.SweepAngle) > math.Pi) {
				t.Errorf("largeArc=%v sweep=%v: delta %v has wrong magnitude",
					largeArc, sweep, arc.SweepAngle)
			}
		}
	}
}

func TestDegenerateDecompositionWinding(t *testing.T) {
	// A quad with collinear control must answer containment the same
	// as the line it decomposes to.
	straight := NewShape().
		MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).LineTo(0, 10).Close()
	viaQuads := NewShape().
		MoveTo(0, 0).QuadTo(5, 0, 10, 0).LineTo(10, 10).QuadTo(5, 10, 0, 10).Close()

	pts := []Point{Pt(5, 5), Pt(15, 5), Pt(-1, -1), Pt(9.5, 0.5), Pt(5, 9.5)}
	for _, p := range pts {
		if straight.ContainsPoint(p) != viaQuads.ContainsPoint(p) {
			t.Errorf("containment of %v differs between line and collinear-quad build", p)
		}
	}

	// The collinear quads must have been stored as lines.
	for _, sp := range viaQuads.Subpaths() {
		for _, seg := range sp.Segments() {
			if _, isQuad := seg.(Quad); isQuad {
				t.Errorf("collinear quad survived decomposition: %v", seg)
			}
		}
	}
}

func TestCollinearEdgeRayHit(t *testing.T) {
	// An edge lying on the ray line reports the nearest forward
	// point of the overlap; an overlap spanning the origin starts at
	// distance zero, and one entirely behind the origin is no hit.
	r := Ray{Origin: Pt(0, 0), Dir: Pt(1, 0)}
	tests := []struct {
		name     string
		line     Line
		wantHit  bool
		wantDist float64
	}{
		{"ahead", Line{P0: Pt(2, 0), P1: Pt(8, 0)}, true, 2},
		{"spans origin", Line{P0: Pt(-5, 0), P1: Pt(5, 0)}, true, 0},
		{"behind", Line{P0: Pt(-5, 0), P1: Pt(-1, 0)}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := tt.line.rayHits(r, nil)
			if !tt.wantHit {
				if len(hits) != 0 {
					t.Fatalf("got %d hits, want none", len(hits))
				}
				return
			}
			if len(hits) != 1 {
				t.Fatalf("got %d hits, want 1", len(hits))
			}
			if diff := cmp.Diff(tt.wantDist, hits[0].Distance, approx); diff != "" {
				t.Errorf("hit distance (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCubicSubdivideAgrees(t *testing.T) {
	c := NewCubic(Pt(0, 0), Pt(2, 6), Pt(8, 6), Pt(10, 0))
	a, b := c.Subdivide()
	for i := 0; i <= 10; i++ {
		u := float64(i) / 10
		if diff := cmp.Diff(c.Eval(u/2), a.Eval(u), approx); diff != "" {
			t.Errorf("left half Eval(%v):\n%s", u, diff)
		}
		if diff := cmp.Diff(c.Eval(0.5+u/2), b.Eval(u), approx); diff != "" {
			t.Errorf("right half Eval(%v):\n%s", u, diff)
		}
	}
}

func TestQuadRaise(t *testing.T) {
	q := NewQuad(Pt(0, 0), Pt(4, 8), Pt(8, 0))
	c := q.Raise()
	for i := 0; i <= 10; i++ {
		u := float64(i) / 10
		if diff := cmp.Diff(q.Eval(u), c.Eval(u), approx); diff != "" {
			t.Errorf("raised cubic Eval(%v):\n%s", u, diff)
		}
	}
}
