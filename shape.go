package pathkit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
)

// ErrImmutable is returned (via [Shape.Err]) when a mutating
// operation is called on a frozen shape.
var ErrImmutable = errors.New("pathkit: shape is immutable")

// Containment-test robustness parameters. A trial ray passing within
// the anti-parallel tolerance of a segment start vertex has an
// ill-defined crossing count, so the direction is perturbed and
// retried up to the attempt cap. These are empirically chosen
// tunables, not proven bounds.
const (
	maxRayAttempts    = 5
	antiParallelTolSq = 1e-9
)

// Shape is an ordered collection of subpaths. It owns the full
// construction grammar and every derived query.
//
// Construction calls are chainable. Precondition violations
// (non-finite coordinates, mutating a frozen shape) do not panic:
// they record a sticky error, retrievable via [Shape.Err], and all
// later mutations become no-ops. Expected numerical degeneracies
// (zero-length segments, undersized arc radii) are handled by
// documented fallback policies and are never surfaced as errors.
type Shape struct {
	subpaths []*Subpath

	// Construction cursor. lastCtrl carries the prior curve's final
	// control point for smooth continuation; ctrlKind says which
	// curve family produced it. All of it resets on every
	// discontinuity (MoveTo, Close, NewSubpath).
	current    Point
	hasCurrent bool
	lastCtrl   Point
	ctrlKind   ctrlKind

	bounds      Box
	boundsValid bool

	frozen bool
	err    error
}

type ctrlKind uint8

const (
	ctrlNone ctrlKind = iota
	ctrlQuad
	ctrlCubic
)

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{}
}

// Err returns the first construction error, if any.
func (s *Shape) Err() error {
	return s.err
}

// Frozen reports whether the shape has been marked immutable.
func (s *Shape) Frozen() bool {
	return s.frozen
}

// Freeze marks the shape immutable. Every later mutating call
// records ErrImmutable and leaves the shape unchanged.
func (s *Shape) Freeze() *Shape {
	s.frozen = true
	return s
}

// Subpaths returns the shape's subpaths. The slice is owned by the
// shape and must not be mutated.
func (s *Shape) Subpaths() []*Subpath {
	return s.subpaths
}

// fail records the first construction error.
func (s *Shape) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// mutable gates every mutating entry point: it rejects frozen
// shapes, checks all coordinates for finiteness, and reports
// whether the mutation may proceed.
func (s *Shape) mutable(op string, coords ...float64) bool {
	if s.err != nil {
		return false
	}
	if s.frozen {
		s.fail(fmt.Errorf("%w: %s", ErrImmutable, op))
		return false
	}
	for _, v := range coords {
		if !isFinite(v) {
			s.fail(fmt.Errorf("pathkit: %s: non-finite coordinate %v", op, v))
			return false
		}
	}
	return true
}

// invalidateBounds clears cached bounds; they are rebuilt lazily.
func (s *Shape) invalidateBounds() {
	s.boundsValid = false
}

// resetCursor clears the smooth-continuation state. Called on every
// discontinuity-introducing operation.
func (s *Shape) resetCursor() {
	s.ctrlKind = ctrlNone
}

// active returns the subpath under construction, creating one if
// needed.
func (s *Shape) active() *Subpath {
	if n := len(s.subpaths); n > 0 && !s.subpaths[n-1].closed {
		return s.subpaths[n-1]
	}
	sp := &Subpath{}
	s.subpaths = append(s.subpaths, sp)
	return sp
}

// ensureCurrent establishes a current point for operations that need
// one: with no prior MoveTo, the operation starts its own subpath at
// the target point.
func (s *Shape) ensureCurrent(p Point) {
	if !s.hasCurrent {
		s.moveTo(p)
	}
}

func (s *Shape) moveTo(p Point) {
	sp := &Subpath{}
	sp.addVertex(p)
	s.subpaths = append(s.subpaths, sp)
	s.current = p
	s.hasCurrent = true
	s.resetCursor()
	s.invalidateBounds()
}

// addSegment stores the nondegenerate decomposition of a raw
// segment: zero-extent pieces are dropped and zero-curvature curves
// are stored as lines, so every stored segment has strictly positive
// extent.
func (s *Shape) addSegment(seg Segment) {
	switch v := seg.(type) {
	case Quad:
		if v.isLinear() {
			seg = Line{P0: v.P0, P1: v.P2}
		}
	case Cubic:
		if v.isLinear() {
			seg = Line{P0: v.P0, P1: v.P3}
		}
	}
	if seg.isDegenerate() {
		Logger().Debug("pathkit: dropped degenerate segment",
			slog.String("kind", fmt.Sprintf("%T", seg)))
		s.current = seg.End()
		s.active().addVertex(s.current)
		return
	}
	sp := s.active()
	sp.append(seg)
	sp.addVertex(seg.End())
	s.current = seg.End()
	s.hasCurrent = true
	s.invalidateBounds()
}

// -------------------------------------------------------------------
// Construction grammar
// -------------------------------------------------------------------

// MoveTo starts a new subpath at (x, y).
func (s *Shape) MoveTo(x, y float64) *Shape {
	if !s.mutable("MoveTo", x, y) {
		return s
	}
	s.moveTo(Pt(x, y))
	return s
}

// LineTo draws a line from the current point to (x, y).
func (s *Shape) LineTo(x, y float64) *Shape {
	if !s.mutable("LineTo", x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	s.addSegment(Line{P0: s.current, P1: p})
	s.resetCursor()
	return s
}

// QuadTo draws a quadratic Bezier with control (cx, cy) to (x, y).
func (s *Shape) QuadTo(cx, cy, x, y float64) *Shape {
	if !s.mutable("QuadTo", cx, cy, x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	ctrl := Pt(cx, cy)
	s.addSegment(Quad{P0: s.current, P1: ctrl, P2: p})
	s.lastCtrl = ctrl
	s.ctrlKind = ctrlQuad
	return s
}

// SmoothQuadTo draws a quadratic Bezier to (x, y) whose control
// point is the prior quadratic's control reflected through the
// current point. If the prior segment was not a quadratic, the
// control degrades to the current point itself.
func (s *Shape) SmoothQuadTo(x, y float64) *Shape {
	if !s.mutable("SmoothQuadTo", x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	ctrl := s.current
	if s.ctrlKind == ctrlQuad {
		ctrl = s.current.Mul(2).Sub(s.lastCtrl)
	}
	s.addSegment(Quad{P0: s.current, P1: ctrl, P2: p})
	s.lastCtrl = ctrl
	s.ctrlKind = ctrlQuad
	return s
}

// CubicTo draws a cubic Bezier with controls (c1x, c1y) and
// (c2x, c2y) to (x, y).
func (s *Shape) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Shape {
	if !s.mutable("CubicTo", c1x, c1y, c2x, c2y, x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	c2 := Pt(c2x, c2y)
	s.addSegment(Cubic{P0: s.current, P1: Pt(c1x, c1y), P2: c2, P3: p})
	s.lastCtrl = c2
	s.ctrlKind = ctrlCubic
	return s
}

// SmoothCubicTo draws a cubic Bezier to (x, y) whose first control
// point is the prior cubic's final control reflected through the
// current point; (c2x, c2y) is the second control. If the prior
// segment was not a cubic, the first control degrades to the current
// point itself.
func (s *Shape) SmoothCubicTo(c2x, c2y, x, y float64) *Shape {
	if !s.mutable("SmoothCubicTo", c2x, c2y, x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	c1 := s.current
	if s.ctrlKind == ctrlCubic {
		c1 = s.current.Mul(2).Sub(s.lastCtrl)
	}
	c2 := Pt(c2x, c2y)
	s.addSegment(Cubic{P0: s.current, P1: c1, P2: c2, P3: p})
	s.lastCtrl = c2
	s.ctrlKind = ctrlCubic
	return s
}

// ArcTo draws an elliptical arc from the current point to (x, y)
// using the SVG endpoint parameterization: radii rx and ry, an
// x-axis rotation in radians, and the large-arc/sweep flags. Radii
// too small to span the endpoints are scaled up uniformly; a zero
// radius or coincident endpoints degrade to a line.
func (s *Shape) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *Shape {
	if !s.mutable("ArcTo", rx, ry, rotation, x, y) {
		return s
	}
	p := Pt(x, y)
	s.ensureCurrent(p)
	arc, ok := arcFromEndpoints(s.current, p, rx, ry, rotation, largeArc, sweep)
	if !ok {
		s.addSegment(Line{P0: s.current, P1: p})
		s.resetCursor()
		return s
	}
	s.addSegment(arc)
	// The parametric endpoint may differ from p by floating error;
	// keep the cursor on the requested point.
	s.current = p
	s.resetCursor()
	return s
}

// Arc draws a circular arc around (cx, cy) with the given radius
// from startAngle to endAngle (radians). clockwise selects the
// direction of travel. A line connects the current point to the
// arc's start when they differ.
func (s *Shape) Arc(cx, cy, radius, startAngle, endAngle float64, clockwise bool) *Shape {
	if !s.mutable("Arc", cx, cy, radius, startAngle, endAngle) {
		return s
	}
	arc := NewArc(Pt(cx, cy), radius, startAngle, endAngle, clockwise)
	s.connectTo(arc.Start())
	s.addSegment(arc)
	s.resetCursor()
	return s
}

// EllipticalArc draws an arc of the ellipse centered at (cx, cy)
// with radii rx, ry rotated by rotation radians, from startAngle to
// endAngle. A line connects the current point to the arc's start
// when they differ.
func (s *Shape) EllipticalArc(cx, cy, rx, ry, rotation, startAngle, endAngle float64, clockwise bool) *Shape {
	if !s.mutable("EllipticalArc", cx, cy, rx, ry, rotation, startAngle, endAngle) {
		return s
	}
	arc := NewEllipticalArc(Pt(cx, cy), rx, ry, rotation, startAngle, endAngle, clockwise)
	s.connectTo(arc.Start())
	s.addSegment(arc)
	s.resetCursor()
	return s
}

// connectTo bridges the pen to p: a MoveTo when no subpath is open,
// a LineTo otherwise.
func (s *Shape) connectTo(p Point) {
	if !s.hasCurrent {
		s.moveTo(p)
		return
	}
	s.addSegment(Line{P0: s.current, P1: p})
}

// Close closes the current subpath with a line back to its start.
func (s *Shape) Close() *Shape {
	if !s.mutable("Close") {
		return s
	}
	if n := len(s.subpaths); n > 0 && !s.subpaths[n-1].closed {
		sp := s.subpaths[n-1]
		if l, ok := sp.closingSegment(); ok {
			sp.append(l)
		}
		sp.close()
		s.current = sp.StartPoint()
	}
	s.resetCursor()
	s.invalidateBounds()
	return s
}

// NewSubpath ends the current subpath without closing it; the next
// drawing operation starts a fresh chain.
func (s *Shape) NewSubpath() *Shape {
	if !s.mutable("NewSubpath") {
		return s
	}
	s.hasCurrent = false
	s.resetCursor()
	return s
}

// Rect adds a closed rectangle subpath.
func (s *Shape) Rect(x, y, w, h float64) *Shape {
	return s.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// Circle adds a closed circle subpath built from two half-turn arcs.
func (s *Shape) Circle(cx, cy, r float64) *Shape {
	if !s.mutable("Circle", cx, cy, r) {
		return s
	}
	return s.MoveTo(cx+r, cy).
		Arc(cx, cy, r, 0, math.Pi, false).
		Arc(cx, cy, r, math.Pi, 2*math.Pi, false).
		Close()
}

// Ellipse adds a closed axis-aligned ellipse subpath.
func (s *Shape) Ellipse(cx, cy, rx, ry float64) *Shape {
	if !s.mutable("Ellipse", cx, cy, rx, ry) {
		return s
	}
	return s.MoveTo(cx+rx, cy).
		EllipticalArc(cx, cy, rx, ry, 0, 0, math.Pi, false).
		EllipticalArc(cx, cy, rx, ry, 0, math.Pi, 2*math.Pi, false).
		Close()
}

// -------------------------------------------------------------------
// Derived queries
// -------------------------------------------------------------------

// Bounds returns the union of the subpath bounds. The result is
// cached and invalidated by every structural mutation.
func (s *Shape) Bounds() Box {
	if !s.boundsValid {
		b := EmptyBox()
		for _, sp := range s.subpaths {
			if sp.IsDrawable() {
				b = b.Union(sp.Bounds())
			}
		}
		s.bounds = b
		s.boundsValid = true
	}
	return s.bounds
}

// ContainsPoint reports whether pt lies inside the filled shape
// under the nonzero winding rule. Unclosed subpaths are treated as
// implicitly closed.
//
// A trial ray direction that passes near a segment start vertex has
// an ill-defined crossing count, so the direction is rotated by a
// random angle and retried, capped at a small number of attempts.
// The result does not depend on the randomness: any safe direction
// yields the same winding number.
func (s *Shape) ContainsPoint(pt Point) bool {
	dir := Pt(1, 0)
	for attempt := 0; attempt < maxRayAttempts; attempt++ {
		if s.rayDirectionSafe(pt, dir) {
			break
		}
		Logger().Debug("pathkit: containment ray retry",
			slog.Int("attempt", attempt+1))
		dir = dir.Rotate(rand.Float64() * 2 * math.Pi)
	}
	r := Ray{Origin: pt, Dir: dir}
	var winding int
	for _, sp := range s.subpaths {
		if sp.IsDrawable() {
			winding += sp.windingCrossings(r)
		}
	}
	return winding != 0
}

// rayDirectionSafe reports whether a ray from pt along dir stays
// clear of every segment start vertex, the implicit closing
// segment's included: the crossing count at a vertex the ray passes
// through is ill-defined.
func (s *Shape) rayDirectionSafe(pt Point, dir Point) bool {
	dn := dir.Normalize()
	clear := func(v Point) bool {
		w := pt.Sub(v)
		if w.LengthSquared() == 0 {
			return true
		}
		// Anti-parallel vertex-to-query vector means the ray from
		// pt passes through the vertex.
		return w.Normalize().Add(dn).LengthSquared() >= antiParallelTolSq
	}
	for _, sp := range s.subpaths {
		for _, seg := range sp.segments {
			if !clear(seg.Start()) {
				return false
			}
		}
		if l, ok := sp.closingSegment(); ok && !clear(l.P0) {
			return false
		}
	}
	return true
}

// Intersections returns every forward intersection of the ray with
// the shape's boundary (implicit closing segments included), sorted
// ascending by distance from the ray origin.
func (s *Shape) Intersections(r Ray) []RayHit {
	var hits []RayHit
	for _, sp := range s.subpaths {
		if sp.IsDrawable() {
			hits = sp.rayHits(r, hits)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// InteriorIntersectsLine reports whether the open segment a-b
// touches the filled interior: either its midpoint is contained, or
// some boundary hit along the a->b ray lies within the segment's
// length. This avoids a full curve/curve intersection computation.
func (s *Shape) InteriorIntersectsLine(a, b Point) bool {
	if s.ContainsPoint(a.Midpoint(b)) {
		return true
	}
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return false
	}
	for _, h := range s.Intersections(Ray{Origin: a, Dir: d}) {
		if h.Distance <= length {
			return true
		}
	}
	return false
}

// Area returns the signed area enclosed by the shape via Green's
// theorem, implicit closing segments included. Overlapping subpaths
// count multiply; use [Shape.Simplified] first for a nonoverlapping
// area.
func (s *Shape) Area() float64 {
	var area float64
	for _, sp := range s.subpaths {
		if sp.IsDrawable() {
			area += sp.signedArea()
		}
	}
	return area
}

// Length returns the total arc length of all drawn segments.
// accuracy controls curve approximation; <= 0 selects a default.
func (s *Shape) Length(accuracy float64) float64 {
	var total float64
	for _, sp := range s.subpaths {
		total += sp.length(accuracy)
	}
	return total
}

// ClosestPoint returns the point on the shape's boundary nearest to
// pt, and its distance. ok is false for an empty shape.
func (s *Shape) ClosestPoint(pt Point) (closest Point, dist float64, ok bool) {
	bestD := math.Inf(1)
	for _, sp := range s.subpaths {
		for _, seg := range sp.segments {
			if c, d := polylineClosest(seg, pt); d < bestD {
				closest, bestD, ok = c, d, true
			}
		}
		if l, lok := sp.closingSegment(); lok && sp.closed {
			if c, d := polylineClosest(l, pt); d < bestD {
				closest, bestD, ok = c, d, true
			}
		}
	}
	if !ok {
		return Point{}, 0, false
	}
	return closest, math.Sqrt(bestD), true
}

// Transform returns a transformed copy of the shape. The identity
// fast-path skips all per-point work. Arcs decompose into cubics
// when the transform is not a similarity.
func (s *Shape) Transform(tr Transformer) *Shape {
	if tr.IsIdentity() {
		return s.Clone()
	}
	out := &Shape{
		current:    tr.Apply(s.current),
		hasCurrent: s.hasCurrent,
		frozen:     s.frozen,
		err:        s.err,
	}
	for _, sp := range s.subpaths {
		out.subpaths = append(out.subpaths, sp.transform(tr))
	}
	return out
}

// Reverse returns a copy with every subpath traversed in the
// opposite direction.
func (s *Shape) Reverse() *Shape {
	out := &Shape{}
	for _, sp := range s.subpaths {
		out.subpaths = append(out.subpaths, sp.reverse())
	}
	return out
}

// Clone returns a deep copy. The copy is mutable even if the
// original was frozen.
func (s *Shape) Clone() *Shape {
	out := &Shape{
		current:     s.current,
		hasCurrent:  s.hasCurrent,
		lastCtrl:    s.lastCtrl,
		ctrlKind:    s.ctrlKind,
		bounds:      s.bounds,
		boundsValid: s.boundsValid,
		err:         s.err,
	}
	for _, sp := range s.subpaths {
		out.subpaths = append(out.subpaths, sp.clone())
	}
	return out
}
