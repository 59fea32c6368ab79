package pathkit

import (
	"math"
	"sort"
)

// Segment is one atomic curve piece of a subpath. Segments are
// immutable once constructed: Start and End agree with Eval(0) and
// Eval(1), and every stored segment has strictly positive extent
// (degenerate pieces are eliminated during construction).
type Segment interface {
	// Start returns the segment's first endpoint (Eval(0)).
	Start() Point
	// End returns the segment's last endpoint (Eval(1)).
	End() Point
	// Eval evaluates the segment at parameter t in [0, 1].
	Eval(t float64) Point
	// Bounds returns the tight axis-aligned bounding box.
	Bounds() Box
	// Length returns the arc length. accuracy controls the
	// approximation; <= 0 selects a default.
	Length(accuracy float64) float64
	// Reverse returns the segment traversed end to start.
	Reverse() Segment
	// Transform returns the transformed segment. Most variants map
	// to a single transformed copy of themselves; arcs decompose to
	// cubics when the transform is not a rigid motion.
	Transform(tr Transformer) []Segment

	// windingCrossings returns the signed crossing count of the
	// segment with the ray.
	windingCrossings(r Ray) int
	// rayHits appends every forward intersection with the ray.
	rayHits(r Ray, hits []RayHit) []RayHit
	// signedArea returns the Green's-theorem area contribution.
	signedArea() float64
	// flatten emits a polyline approximation: every point after the
	// start, within tol of the true curve.
	flatten(tol float64, emit func(Point))
	// isDegenerate reports zero effective extent.
	isDegenerate() bool
}

// Ray is a half-line from Origin in direction Dir.
// Dir need not be normalized but must be nonzero.
type Ray struct {
	Origin Point
	Dir    Point
}

// RayHit is one forward intersection of a ray with a segment.
type RayHit struct {
	Point    Point
	Distance float64 // euclidean distance from the ray origin
}

// Default tolerances for adaptive curve approximation. Flattening
// tolerance scales with the segment extent so queries are
// scale-free; degeneracy is judged on squared extent.
const (
	relFlattenTol = 1e-4
	minFlattenTol = 1e-9
	degenerateEps = 1e-12
	defaultLenAcc = 1e-9
)

// flattenTolFor picks a flattening tolerance proportional to the
// segment's bounding extent.
func flattenTolFor(b Box) float64 {
	ext := math.Max(b.Width(), b.Height())
	return math.Max(ext*relFlattenTol, minFlattenTol)
}

// rayFrame expresses p in the ray's local frame: x along the ray
// direction (in euclidean units), y positive to the left.
func (r Ray) rayFrame(p Point) Point {
	dn := r.Dir.Normalize()
	u := p.Sub(r.Origin)
	return Point{X: u.Dot(dn), Y: dn.Cross(u)}
}

// lineRayCrossing counts the signed crossing of the open edge p0-p1
// with the ray: +1 for a left-to-right crossing of the ray line at
// positive distance, -1 for the opposite direction.
func lineRayCrossing(p0, p1 Point, r Ray) int {
	a := r.rayFrame(p0)
	b := r.rayFrame(p1)
	if a.Y <= 0 && b.Y > 0 {
		if x := a.X + (b.X-a.X)*(-a.Y)/(b.Y-a.Y); x > 0 {
			return 1
		}
	} else if b.Y <= 0 && a.Y > 0 {
		if x := b.X + (a.X-b.X)*(-b.Y)/(a.Y-b.Y); x > 0 {
			return -1
		}
	}
	return 0
}

// lineRayHit returns the forward intersection of edge p0-p1 with the
// ray, if one exists.
func lineRayHit(p0, p1 Point, r Ray) (RayHit, bool) {
	a := r.rayFrame(p0)
	b := r.rayFrame(p1)
	if (a.Y > 0) == (b.Y > 0) && a.Y != 0 && b.Y != 0 {
		return RayHit{}, false
	}
	dy := b.Y - a.Y
	var x float64
	if dy == 0 {
		// Edge lies on the ray line; report the nearest forward
		// point of the overlap.
		if math.Max(a.X, b.X) < 0 {
			return RayHit{}, false
		}
		x = math.Max(0, math.Min(a.X, b.X))
	} else {
		x = a.X + (b.X-a.X)*(-a.Y)/dy
	}
	if x < 0 {
		return RayHit{}, false
	}
	dn := r.Dir.Normalize()
	return RayHit{Point: r.Origin.Add(dn.Mul(x)), Distance: x}, true
}

// polylineWinding accumulates crossings over a flattened segment.
func polylineWinding(s Segment, r Ray) int {
	var w int
	prev := s.Start()
	s.flatten(flattenTolFor(s.Bounds()), func(p Point) {
		w += lineRayCrossing(prev, p, r)
		prev = p
	})
	return w
}

// polylineRayHits appends hits over a flattened segment.
func polylineRayHits(s Segment, r Ray, hits []RayHit) []RayHit {
	prev := s.Start()
	s.flatten(flattenTolFor(s.Bounds()), func(p Point) {
		if h, ok := lineRayHit(prev, p, r); ok {
			hits = append(hits, h)
		}
		prev = p
	})
	return hits
}

// polylineClosest projects pt onto a flattened segment and returns
// the nearest point with its squared distance.
func polylineClosest(s Segment, pt Point) (Point, float64) {
	best := s.Start()
	bestD := pt.DistanceSquared(best)
	prev := s.Start()
	s.flatten(flattenTolFor(s.Bounds()), func(p Point) {
		c := closestOnEdge(prev, p, pt)
		if d := pt.DistanceSquared(c); d < bestD {
			best, bestD = c, d
		}
		prev = p
	})
	return best, bestD
}

// closestOnEdge returns the point on edge p0-p1 nearest to pt.
func closestOnEdge(p0, p1, pt Point) Point {
	d := p1.Sub(p0)
	den := d.LengthSquared()
	if den == 0 {
		return p0
	}
	t := pt.Sub(p0).Dot(d) / den
	t = math.Min(math.Max(t, 0), 1)
	return p0.Lerp(p1, t)
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

var _ Segment = Line{}

// NewLine creates a line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Start implements Segment.
func (l Line) Start() Point { return l.P0 }

// End implements Segment.
func (l Line) End() Point { return l.P1 }

// Eval implements Segment.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Bounds implements Segment.
func (l Line) Bounds() Box {
	return NewBox(l.P0, l.P1)
}

// Length implements Segment. The accuracy argument is ignored: line
// length is exact.
func (l Line) Length(float64) float64 {
	return l.P0.Distance(l.P1)
}

// Reverse implements Segment.
func (l Line) Reverse() Segment {
	return Line{P0: l.P1, P1: l.P0}
}

// Transform implements Segment.
func (l Line) Transform(tr Transformer) []Segment {
	if tr.IsIdentity() {
		return []Segment{l}
	}
	return []Segment{Line{P0: tr.Apply(l.P0), P1: tr.Apply(l.P1)}}
}

func (l Line) windingCrossings(r Ray) int {
	return lineRayCrossing(l.P0, l.P1, r)
}

func (l Line) rayHits(r Ray, hits []RayHit) []RayHit {
	if h, ok := lineRayHit(l.P0, l.P1, r); ok {
		hits = append(hits, h)
	}
	return hits
}

// signedArea uses the shoelace formula: 0.5 * (x0*y1 - x1*y0).
func (l Line) signedArea() float64 {
	return 0.5 * (l.P0.X*l.P1.Y - l.P1.X*l.P0.Y)
}

func (l Line) flatten(_ float64, emit func(Point)) {
	emit(l.P1)
}

func (l Line) isDegenerate() bool {
	return l.P0.DistanceSquared(l.P1) < degenerateEps
}

// -------------------------------------------------------------------
// Quad - quadratic Bezier
// -------------------------------------------------------------------

// Quad is a quadratic Bezier segment: start P0, control P1, end P2.
type Quad struct {
	P0, P1, P2 Point
}

var _ Segment = Quad{}

// NewQuad creates a quadratic Bezier segment.
func NewQuad(p0, p1, p2 Point) Quad {
	return Quad{P0: p0, P1: p1, P2: p2}
}

// Start implements Segment.
func (q Quad) Start() Point { return q.P0 }

// End implements Segment.
func (q Quad) End() Point { return q.P2 }

// Eval implements Segment.
func (q Quad) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (q Quad) Subdivide() (Quad, Quad) {
	p01 := q.P0.Midpoint(q.P1)
	p12 := q.P1.Midpoint(q.P2)
	mid := p01.Midpoint(p12)
	return Quad{P0: q.P0, P1: p01, P2: mid}, Quad{P0: mid, P1: p12, P2: q.P2}
}

// Raise elevates the quadratic to an exact cubic representation.
func (q Quad) Raise() Cubic {
	return Cubic{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Extrema returns parameter values in (0, 1) where the derivative of
// either coordinate is zero.
func (q Quad) Extrema() []float64 {
	var result []float64
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	// The derivative is linear; solve per coordinate.
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	sort.Float64s(result)
	return result
}

// Bounds implements Segment.
func (q Quad) Bounds() Box {
	b := NewBox(q.P0, q.P2)
	for _, t := range q.Extrema() {
		b = b.ExpandPoint(q.Eval(t))
	}
	return b
}

// Length implements Segment, using adaptive chord/polygon bounds.
func (q Quad) Length(accuracy float64) float64 {
	if accuracy <= 0 {
		accuracy = defaultLenAcc
	}
	return quadLength(q, accuracy*accuracy)
}

func quadLength(q Quad, accSq float64) float64 {
	chord := q.P0.Distance(q.P2)
	poly := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
	diff := poly - chord
	if diff*diff <= accSq {
		return (chord + poly) / 2
	}
	a, b := q.Subdivide()
	return quadLength(a, accSq) + quadLength(b, accSq)
}

// Reverse implements Segment.
func (q Quad) Reverse() Segment {
	return Quad{P0: q.P2, P1: q.P1, P2: q.P0}
}

// Transform implements Segment.
func (q Quad) Transform(tr Transformer) []Segment {
	if tr.IsIdentity() {
		return []Segment{q}
	}
	return []Segment{Quad{
		P0: tr.Apply(q.P0), P1: tr.Apply(q.P1), P2: tr.Apply(q.P2),
	}}
}

func (q Quad) windingCrossings(r Ray) int {
	return polylineWinding(q, r)
}

func (q Quad) rayHits(r Ray, hits []RayHit) []RayHit {
	return polylineRayHits(q, r, hits)
}

// signedArea integrates x*dy over the parametric form.
func (q Quad) signedArea() float64 {
	return (q.P0.X*(2*q.P1.Y+q.P2.Y) +
		q.P1.X*(-q.P0.Y+q.P2.Y) +
		q.P2.X*(-2*q.P1.Y-q.P0.Y)) / 6.0
}

func (q Quad) flatten(tol float64, emit func(Point)) {
	flattenQuad(q, tol*tol, emit)
}

func flattenQuad(q Quad, tolSq float64, emit func(Point)) {
	// Flatness: distance from control point to chord midpoint.
	mid := q.P0.Midpoint(q.P2)
	if q.P1.Sub(mid).LengthSquared() <= tolSq {
		emit(q.P2)
		return
	}
	a, b := q.Subdivide()
	flattenQuad(a, tolSq, emit)
	flattenQuad(b, tolSq, emit)
}

func (q Quad) isDegenerate() bool {
	return q.P0.DistanceSquared(q.P1) < degenerateEps &&
		q.P1.DistanceSquared(q.P2) < degenerateEps
}

// isLinear reports whether the control point lies on the chord, so
// the curve has zero curvature.
func (q Quad) isLinear() bool {
	chord := q.P2.Sub(q.P0)
	off := q.P1.Sub(q.P0)
	cross := chord.Cross(off)
	return cross*cross < degenerateEps*chord.LengthSquared()
}

// -------------------------------------------------------------------
// Cubic - cubic Bezier
// -------------------------------------------------------------------

// Cubic is a cubic Bezier segment: start P0, controls P1 and P2,
// end P3.
type Cubic struct {
	P0, P1, P2, P3 Point
}

var _ Segment = Cubic{}

// NewCubic creates a cubic Bezier segment.
func NewCubic(p0, p1, p2, p3 Point) Cubic {
	return Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Start implements Segment.
func (c Cubic) Start() Point { return c.P0 }

// End implements Segment.
func (c Cubic) End() Point { return c.P3 }

// Eval implements Segment.
func (c Cubic) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (c Cubic) Subdivide() (Cubic, Cubic) {
	p01 := c.P0.Midpoint(c.P1)
	p12 := c.P1.Midpoint(c.P2)
	p23 := c.P2.Midpoint(c.P3)
	p012 := p01.Midpoint(p12)
	p123 := p12.Midpoint(p23)
	mid := p012.Midpoint(p123)
	return Cubic{P0: c.P0, P1: p01, P2: p012, P3: mid},
		Cubic{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Deriv returns the derivative curve (a quadratic Bezier).
func (c Cubic) Deriv() Quad {
	return Quad{
		P0: c.P1.Sub(c.P0).Mul(3),
		P1: c.P2.Sub(c.P1).Mul(3),
		P2: c.P3.Sub(c.P2).Mul(3),
	}
}

// Tangent returns the tangent vector at parameter t.
func (c Cubic) Tangent(t float64) Point {
	return c.Deriv().Eval(t)
}

// Extrema returns parameter values in [0, 1] where the derivative of
// either coordinate is zero. A cubic can have up to four.
func (c Cubic) Extrema() []float64 {
	result := make([]float64, 0, 4)
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	// The derivative is a quadratic in Bernstein form; solve per
	// coordinate.
	result = append(result, solveQuadraticUnit(
		d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, solveQuadraticUnit(
		d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// Bounds implements Segment.
func (c Cubic) Bounds() Box {
	b := NewBox(c.P0, c.P3)
	for _, t := range c.Extrema() {
		b = b.ExpandPoint(c.Eval(t))
	}
	return b
}

// Length implements Segment, using adaptive chord/polygon bounds.
func (c Cubic) Length(accuracy float64) float64 {
	if accuracy <= 0 {
		accuracy = defaultLenAcc
	}
	return cubicLength(c, accuracy*accuracy)
}

func cubicLength(c Cubic, accSq float64) float64 {
	chord := c.P0.Distance(c.P3)
	poly := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
	diff := poly - chord
	if diff*diff <= accSq {
		return (chord + poly) / 2
	}
	a, b := c.Subdivide()
	return cubicLength(a, accSq) + cubicLength(b, accSq)
}

// Reverse implements Segment.
func (c Cubic) Reverse() Segment {
	return Cubic{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Transform implements Segment.
func (c Cubic) Transform(tr Transformer) []Segment {
	if tr.IsIdentity() {
		return []Segment{c}
	}
	return []Segment{Cubic{
		P0: tr.Apply(c.P0), P1: tr.Apply(c.P1),
		P2: tr.Apply(c.P2), P3: tr.Apply(c.P3),
	}}
}

func (c Cubic) windingCrossings(r Ray) int {
	return polylineWinding(c, r)
}

func (c Cubic) rayHits(r Ray, hits []RayHit) []RayHit {
	return polylineRayHits(c, r, hits)
}

// signedArea integrates x*dy over the parametric form.
func (c Cubic) signedArea() float64 {
	return (c.P0.X*(6*c.P1.Y+3*c.P2.Y+c.P3.Y) +
		3*c.P1.X*(-2*c.P0.Y+c.P2.Y+c.P3.Y) +
		3*c.P2.X*(-c.P0.Y-c.P1.Y+2*c.P3.Y) +
		c.P3.X*(-c.P0.Y-3*c.P1.Y-6*c.P2.Y)) / 20.0
}

func (c Cubic) flatten(tol float64, emit func(Point)) {
	flattenCubic(c, tol*tol, emit)
}

func flattenCubic(c Cubic, tolSq float64, emit func(Point)) {
	if cubicFlatnessSq(c) <= 16*tolSq {
		emit(c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenCubic(a, tolSq, emit)
	flattenCubic(b, tolSq, emit)
}

// cubicFlatnessSq returns the squared flatness metric: the maximum
// squared deviation of the control points from the chord, scaled.
func cubicFlatnessSq(c Cubic) float64 {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - c.P0.X - 2*c.P3.X
	vy := 3*c.P2.Y - c.P0.Y - 2*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

func (c Cubic) isDegenerate() bool {
	return c.P0.DistanceSquared(c.P1) < degenerateEps &&
		c.P1.DistanceSquared(c.P2) < degenerateEps &&
		c.P2.DistanceSquared(c.P3) < degenerateEps
}

// isLinear reports whether both control points lie on the chord.
func (c Cubic) isLinear() bool {
	chord := c.P3.Sub(c.P0)
	lenSq := chord.LengthSquared()
	c1 := chord.Cross(c.P1.Sub(c.P0))
	c2 := chord.Cross(c.P2.Sub(c.P0))
	return c1*c1 < degenerateEps*lenSq && c2*c2 < degenerateEps*lenSq
}
