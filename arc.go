package pathkit

import (
	"log/slog"
	"math"
)

// Arc is a circular arc segment around Center with the given Radius,
// swept from StartAngle by SweepAngle radians. The sign of SweepAngle
// is the arc's direction: positive sweeps with increasing angle.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
}

var _ Segment = Arc{}

// NewArc creates a circular arc from startAngle to endAngle.
// clockwise selects the direction of travel: when true the sweep
// runs from startAngle down to endAngle.
func NewArc(center Point, radius, startAngle, endAngle float64, clockwise bool) Arc {
	sweep := normalizeSweep(startAngle, endAngle, clockwise)
	return Arc{Center: center, Radius: radius, StartAngle: startAngle, SweepAngle: sweep}
}

// normalizeSweep computes a signed sweep from start to end honoring
// the direction flag. A zero angular difference yields a full turn.
func normalizeSweep(start, end float64, clockwise bool) float64 {
	const twoPi = 2 * math.Pi
	sweep := math.Mod(end-start, twoPi)
	if clockwise {
		if sweep >= 0 {
			sweep -= twoPi
		}
	} else {
		if sweep <= 0 {
			sweep += twoPi
		}
	}
	return sweep
}

// EndAngle returns StartAngle + SweepAngle.
func (a Arc) EndAngle() float64 {
	return a.StartAngle + a.SweepAngle
}

// Clockwise reports the direction of travel.
func (a Arc) Clockwise() bool {
	return a.SweepAngle < 0
}

// ellipse widens the circular arc into the elliptical representation
// all the shared arc machinery operates on.
func (a Arc) ellipse() EllipticalArc {
	return EllipticalArc{
		Center:     a.Center,
		Rx:         a.Radius,
		Ry:         a.Radius,
		StartAngle: a.StartAngle,
		SweepAngle: a.SweepAngle,
	}
}

// Start implements Segment.
func (a Arc) Start() Point { return a.Eval(0) }

// End implements Segment.
func (a Arc) End() Point { return a.Eval(1) }

// Eval implements Segment.
func (a Arc) Eval(t float64) Point {
	sin, cos := math.Sincos(a.StartAngle + t*a.SweepAngle)
	return Point{X: a.Center.X + a.Radius*cos, Y: a.Center.Y + a.Radius*sin}
}

// Bounds implements Segment.
func (a Arc) Bounds() Box { return a.ellipse().Bounds() }

// Length implements Segment. Circular arc length is exact.
func (a Arc) Length(float64) float64 {
	return a.Radius * math.Abs(a.SweepAngle)
}

// Reverse implements Segment.
func (a Arc) Reverse() Segment {
	return Arc{
		Center:     a.Center,
		Radius:     a.Radius,
		StartAngle: a.EndAngle(),
		SweepAngle: -a.SweepAngle,
	}
}

// Transform implements Segment. Similarity transforms (uniform scale
// plus rotation) keep the arc circular; anything else decomposes to
// cubics.
func (a Arc) Transform(tr Transformer) []Segment {
	if tr.IsIdentity() {
		return []Segment{a}
	}
	if m, ok := tr.(Matrix); ok {
		if scale, angle, ok := similarity(m); ok {
			return []Segment{Arc{
				Center:     m.Apply(a.Center),
				Radius:     a.Radius * scale,
				StartAngle: a.StartAngle + angle,
				SweepAngle: a.SweepAngle,
			}}
		}
	}
	return transformViaCubics(a.ellipse(), tr)
}

func (a Arc) windingCrossings(r Ray) int { return polylineWinding(a, r) }
func (a Arc) rayHits(r Ray, hits []RayHit) []RayHit { return polylineRayHits(a, r, hits) }
func (a Arc) signedArea() float64 { return a.ellipse().signedArea() }
func (a Arc) flatten(tol float64, emit func(Point)) {
	a.ellipse().flatten(tol, emit)
}
func (a Arc) isDegenerate() bool {
	return a.Radius*a.Radius < degenerateEps || a.SweepAngle == 0
}

// -------------------------------------------------------------------
// EllipticalArc
// -------------------------------------------------------------------

// EllipticalArc is an arc of an ellipse with radii Rx, Ry rotated by
// Rotation radians about its Center, swept from StartAngle by
// SweepAngle (both measured before the rotation is applied).
type EllipticalArc struct {
	Center     Point
	Rx, Ry     float64
	Rotation   float64
	StartAngle float64
	SweepAngle float64
}

var _ Segment = EllipticalArc{}

// NewEllipticalArc creates an elliptical arc from startAngle to
// endAngle with the given direction of travel.
func NewEllipticalArc(center Point, rx, ry, rotation, startAngle, endAngle float64, clockwise bool) EllipticalArc {
	return EllipticalArc{
		Center:     center,
		Rx:         rx,
		Ry:         ry,
		Rotation:   rotation,
		StartAngle: startAngle,
		SweepAngle: normalizeSweep(startAngle, endAngle, clockwise),
	}
}

// EndAngle returns StartAngle + SweepAngle.
func (e EllipticalArc) EndAngle() float64 {
	return e.StartAngle + e.SweepAngle
}

// Clockwise reports the direction of travel.
func (e EllipticalArc) Clockwise() bool {
	return e.SweepAngle < 0
}

// sample returns the point at ellipse parameter angle theta, before
// translation to the center.
func (e EllipticalArc) sample(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{X: e.Rx * cos, Y: e.Ry * sin}.Rotate(e.Rotation)
}

// Start implements Segment.
func (e EllipticalArc) Start() Point { return e.Eval(0) }

// End implements Segment.
func (e EllipticalArc) End() Point { return e.Eval(1) }

// Eval implements Segment.
func (e EllipticalArc) Eval(t float64) Point {
	return e.Center.Add(e.sample(e.StartAngle + t*e.SweepAngle))
}

// angleOnArc reports whether ellipse parameter theta lies within the
// swept angular range.
func (e EllipticalArc) angleOnArc(theta float64) bool {
	const twoPi = 2 * math.Pi
	var d float64
	if e.SweepAngle >= 0 {
		d = math.Mod(theta-e.StartAngle, twoPi)
		if d < 0 {
			d += twoPi
		}
		return d <= e.SweepAngle
	}
	d = math.Mod(e.StartAngle-theta, twoPi)
	if d < 0 {
		d += twoPi
	}
	return d <= -e.SweepAngle
}

// Bounds implements Segment. The box covers both endpoints plus
// every axis extremum angle crossed by the sweep.
func (e EllipticalArc) Bounds() Box {
	b := NewBox(e.Start(), e.End())
	// Angles where dx/dtheta = 0 and dy/dtheta = 0 for the rotated
	// ellipse, each with its antipode.
	thetaX := math.Atan2(-e.Ry*math.Sin(e.Rotation), e.Rx*math.Cos(e.Rotation))
	thetaY := math.Atan2(e.Ry*math.Cos(e.Rotation), e.Rx*math.Sin(e.Rotation))
	for _, theta := range [4]float64{thetaX, thetaX + math.Pi, thetaY, thetaY + math.Pi} {
		if e.angleOnArc(theta) {
			b = b.ExpandPoint(e.Center.Add(e.sample(theta)))
		}
	}
	return b
}

// Length implements Segment. Ellipse arc length has no closed form;
// it is measured over the cubic approximation.
func (e EllipticalArc) Length(accuracy float64) float64 {
	if accuracy <= 0 {
		accuracy = defaultLenAcc
	}
	var total float64
	for _, c := range e.toCubics() {
		total += c.Length(accuracy)
	}
	return total
}

// Reverse implements Segment.
func (e EllipticalArc) Reverse() Segment {
	e.StartAngle = e.EndAngle()
	e.SweepAngle = -e.SweepAngle
	return e
}

// Transform implements Segment. Similarity transforms preserve the
// elliptical form; anything else decomposes to cubics.
func (e EllipticalArc) Transform(tr Transformer) []Segment {
	if tr.IsIdentity() {
		return []Segment{e}
	}
	if m, ok := tr.(Matrix); ok {
		if scale, angle, ok := similarity(m); ok {
			e.Center = m.Apply(e.Center)
			e.Rx *= scale
			e.Ry *= scale
			e.Rotation += angle
			return []Segment{e}
		}
	}
	return transformViaCubics(e, tr)
}

func (e EllipticalArc) windingCrossings(r Ray) int { return polylineWinding(e, r) }
func (e EllipticalArc) rayHits(r Ray, hits []RayHit) []RayHit { return polylineRayHits(e, r, hits) }

// signedArea sums the Green's-theorem contributions of the cubic
// approximation; its endpoints coincide with the arc's, so the total
// matches the arc's contribution to subpath area.
func (e EllipticalArc) signedArea() float64 {
	var total float64
	for _, c := range e.toCubics() {
		total += c.signedArea()
	}
	return total
}

func (e EllipticalArc) flatten(tol float64, emit func(Point)) {
	// Angle step chosen so the sagitta of each chord stays under tol.
	r := math.Max(math.Abs(e.Rx), math.Abs(e.Ry))
	if r <= 0 {
		emit(e.End())
		return
	}
	ratio := 1 - tol/r
	step := math.Pi / 2
	if ratio > -1 && ratio < 1 {
		step = 2 * math.Acos(ratio)
	}
	n := int(math.Ceil(math.Abs(e.SweepAngle) / step))
	if n < 1 {
		n = 1
	}
	for i := 1; i < n; i++ {
		emit(e.Eval(float64(i) / float64(n)))
	}
	emit(e.End())
}

func (e EllipticalArc) isDegenerate() bool {
	if e.SweepAngle == 0 {
		return true
	}
	return e.Rx*e.Rx < degenerateEps || e.Ry*e.Ry < degenerateEps
}

// toCubics approximates the arc with one cubic per sweep span of at
// most a quarter turn, using the standard tangent arm length
// (4/3)*tan(sweep/4).
func (e EllipticalArc) toCubics() []Cubic {
	n := int(math.Ceil(math.Abs(e.SweepAngle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := e.SweepAngle / float64(n)
	arm := math.Copysign((4.0/3.0)*math.Tan(math.Abs(step)/4), e.SweepAngle)

	out := make([]Cubic, 0, n)
	angle0 := e.StartAngle
	p0 := e.Center.Add(e.sample(angle0))
	for i := 0; i < n; i++ {
		angle1 := angle0 + step
		// The derivative of the ellipse at theta is the sample at
		// theta+pi/2 scaled by the radii, which sample already does.
		p1 := p0.Add(e.sample(angle0 + math.Pi/2).Mul(arm))
		p3 := e.Center.Add(e.sample(angle1))
		p2 := p3.Sub(e.sample(angle1 + math.Pi/2).Mul(arm))
		out = append(out, Cubic{P0: p0, P1: p1, P2: p2, P3: p3})
		angle0 = angle1
		p0 = p3
	}
	return out
}

// transformViaCubics decomposes an arc into cubics and transforms
// their control points.
func transformViaCubics(e EllipticalArc, tr Transformer) []Segment {
	cubics := e.toCubics()
	out := make([]Segment, 0, len(cubics))
	for _, c := range cubics {
		out = append(out, Cubic{
			P0: tr.Apply(c.P0), P1: tr.Apply(c.P1),
			P2: tr.Apply(c.P2), P3: tr.Apply(c.P3),
		})
	}
	return out
}

// similarity decomposes a matrix into uniform scale and rotation if
// it is a similarity transform with positive determinant.
func similarity(m Matrix) (scale, angle float64, ok bool) {
	const eps = 1e-12
	if math.Abs(m.A-m.E) > eps || math.Abs(m.B+m.D) > eps {
		return 0, 0, false
	}
	scale = math.Hypot(m.A, m.D)
	if scale < eps {
		return 0, 0, false
	}
	return scale, math.Atan2(m.D, m.A), true
}

// arcFromEndpoints solves the SVG endpoint parameterization: given
// the current point, an endpoint, radii, an x-axis rotation, and the
// large-arc/sweep flags, it produces a center-parameterized
// elliptical arc. Radii too small to span the endpoints are scaled
// up uniformly.
//
// See https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func arcFromEndpoints(start, end Point, rx, ry, rotation float64, largeArc, sweep bool) (EllipticalArc, bool) {
	if start == end {
		return EllipticalArc{}, false
	}
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	if rx == 0 || ry == 0 {
		return EllipticalArc{}, false
	}

	// Rotate the endpoint midpoint difference into arc-local
	// coordinates (the "prime" frame).
	sin, cos := math.Sincos(rotation)
	dx := (start.X - end.X) / 2
	dy := (start.Y - end.Y) / 2
	x1p := cos*dx + sin*dy
	y1p := -sin*dx + cos*dy

	// Scale radii up uniformly when they cannot span the endpoints.
	shortfall := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if shortfall > 1 {
		s := math.Sqrt(shortfall)
		Logger().Debug("pathkit: arc radii scaled to span endpoints",
			slog.Float64("factor", s))
		rx *= s
		ry *= s
	}

	// Center in the prime frame; the sign resolves which of the two
	// candidate centers matches the flag combination.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	sq := num / den
	if sq < 0 {
		sq = 0
	}
	coef := math.Sqrt(sq)
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx

	center := Point{
		X: cos*cxp - sin*cyp + (start.X+end.X)/2,
		Y: sin*cxp + cos*cyp + (start.Y+end.Y)/2,
	}

	// Start and delta angle from signed angles between the derived
	// unit vectors.
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := (-x1p - cxp) / rx
	vy := (-y1p - cyp) / ry

	start1 := Point{X: 1, Y: 0}.AngleTo(Point{X: ux, Y: uy})
	delta := Point{X: ux, Y: uy}.AngleTo(Point{X: vx, Y: vy})

	// Correct the delta sign to match the sweep flag.
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return EllipticalArc{
		Center:     center,
		Rx:         rx,
		Ry:         ry,
		Rotation:   rotation,
		StartAngle: start1,
		SweepAngle: delta,
	}, true
}
