package pathkit

import "math"

// LineCap specifies the shape of stroked line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of stroked line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// StrokeOptions defines the style for stroke outline expansion.
type StrokeOptions struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Tolerance bounds the flattening error when curves are
	// approximated for offsetting; <= 0 selects a default relative
	// to the shape's extent.
	Tolerance float64
}

// DefaultStrokeOptions returns stroke settings matching the common
// canvas defaults.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// Stroke returns the outline of the shape stroked with the given
// style: a new shape whose filled interior is the stroked region.
// Curves are flattened within opts.Tolerance before offsetting, so
// the outline is polygonal apart from round caps and joins. The
// outline may self-overlap at tight joins; filling under the nonzero
// rule, or resolving through a Combiner, yields the painted region.
func (s *Shape) Stroke(opts StrokeOptions) *Shape {
	if opts.Width <= 0 || s.err != nil {
		return NewShape()
	}
	if opts.MiterLimit <= 0 {
		opts.MiterLimit = 4.0
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = flattenTolFor(s.Bounds())
	}

	out := NewShape()
	half := opts.Width / 2
	for _, sp := range s.subpaths {
		pts := flattenSubpath(sp, tol)
		if len(pts) < 2 {
			continue
		}
		if sp.closed {
			strokeClosed(out, pts, half, opts)
		} else {
			strokeOpen(out, pts, half, opts)
		}
	}
	return out
}

// flattenSubpath returns the subpath as a polyline, closing the loop
// for closed subpaths and dropping repeated points.
func flattenSubpath(sp *Subpath, tol float64) []Point {
	if !sp.IsDrawable() {
		return nil
	}
	pts := []Point{sp.StartPoint()}
	push := func(p Point) {
		if p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	for _, seg := range sp.segments {
		seg.flatten(tol, push)
	}
	if sp.closed {
		if c, ok := sp.closingSegment(); ok {
			push(c.P1)
		}
		// The loop is implicit between the last and first point.
		if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
		}
	}
	return pts
}

// strokeOpen emits one outline subpath: down the left side, around
// the end cap, back up the right side, and around the start cap.
func strokeOpen(out *Shape, pts []Point, half float64, opts StrokeOptions) {
	n := len(pts)
	u0 := edgeNormal(pts[0], pts[1])
	first := pts[0].Add(u0.Mul(half))
	out.MoveTo(first.X, first.Y)
	strokeSide(out, pts, half, opts)

	uEnd := edgeNormal(pts[n-2], pts[n-1])
	strokeCap(out, pts[n-1], uEnd, half, opts.Cap)

	rev := reversedPoints(pts)
	strokeSide(out, rev, half, opts)

	// The start cap runs from the right side back to the first
	// outline point.
	strokeCap(out, pts[0], u0.Neg(), half, opts.Cap)
	out.Close()
}

// strokeClosed emits two outline subpaths: the outer offset loop and
// the inner loop traversed in reverse, so the nonzero fill of the
// result is the stroked ring.
func strokeClosed(out *Shape, pts []Point, half float64, opts StrokeOptions) {
	for _, loop := range [][]Point{pts, reversedPoints(pts)} {
		u0 := edgeNormal(loop[0], loop[1])
		first := loop[0].Add(u0.Mul(half))
		out.MoveTo(first.X, first.Y)
		strokeSideClosed(out, loop, half, opts)
		out.Close()
	}
}

// strokeSide walks the left offset of an open polyline, joining at
// every interior vertex. The caller has already positioned the pen
// on the first offset point.
func strokeSide(out *Shape, pts []Point, half float64, opts StrokeOptions) {
	prev := edgeNormal(pts[0], pts[1])
	for i := 1; i < len(pts); i++ {
		q := pts[i-1].Add(prev.Mul(half))
		out.LineTo(q.X, q.Y)
		if i < len(pts)-1 {
			cur := edgeNormal(pts[i], pts[i+1])
			p := pts[i].Add(prev.Mul(half))
			out.LineTo(p.X, p.Y)
			strokeJoin(out, pts[i], prev, cur, half, opts)
			prev = cur
		}
	}
	last := pts[len(pts)-1].Add(prev.Mul(half))
	out.LineTo(last.X, last.Y)
}

// strokeSideClosed walks the left offset of a closed loop, including
// the wrap-around join at the seam vertex.
func strokeSideClosed(out *Shape, pts []Point, half float64, opts StrokeOptions) {
	n := len(pts)
	prev := edgeNormal(pts[0], pts[1])
	for i := 1; i <= n; i++ {
		v := pts[i%n]
		p := v.Add(prev.Mul(half))
		out.LineTo(p.X, p.Y)
		cur := edgeNormal(v, pts[(i+1)%n])
		strokeJoin(out, v, prev, cur, half, opts)
		prev = cur
	}
}

// strokeJoin connects two consecutive offset edges at vertex p. u1
// and u2 are the unit left normals before and after the vertex; the
// pen sits on p+u1*half and the join ends on p+u2*half.
func strokeJoin(out *Shape, p, u1, u2 Point, half float64, opts StrokeOptions) {
	cross := u1.Cross(u2)
	dot := u1.Dot(u2)
	to := p.Add(u2.Mul(half))
	if cross == 0 && dot >= 0 {
		out.LineTo(to.X, to.Y)
		return
	}
	if cross > 0 {
		// Inner corner: the offsets overlap, a bevel line suffices.
		out.LineTo(to.X, to.Y)
		return
	}
	switch opts.Join {
	case LineJoinRound:
		a1 := math.Atan2(u1.Y, u1.X)
		a2 := math.Atan2(u2.Y, u2.X)
		out.Arc(p.X, p.Y, half, a1, a2, true)
	case LineJoinMiter:
		// Miter when the spike stays within the limit, bevel
		// otherwise.
		if b := u1.Add(u2); b.LengthSquared() > 0 {
			bu := b.Normalize()
			if c := bu.Dot(u1); c > 0 && 1/c <= opts.MiterLimit {
				m := p.Add(bu.Mul(half / c))
				out.LineTo(m.X, m.Y)
			}
		}
		out.LineTo(to.X, to.Y)
	default:
		out.LineTo(to.X, to.Y)
	}
}

// strokeCap closes off an endpoint: the pen sits on p+u*half and the
// cap ends on p-u*half, passing around the outside of p.
func strokeCap(out *Shape, p, u Point, half float64, style LineCap) {
	to := p.Sub(u.Mul(half))
	switch style {
	case LineCapRound:
		a := math.Atan2(u.Y, u.X)
		out.Arc(p.X, p.Y, half, a, a-math.Pi, true)
	case LineCapSquare:
		// Tangent pointing out of the endpoint.
		t := Point{X: u.Y, Y: -u.X}
		q1 := p.Add(u.Mul(half)).Add(t.Mul(half))
		q2 := to.Add(t.Mul(half))
		out.LineTo(q1.X, q1.Y)
		out.LineTo(q2.X, q2.Y)
		out.LineTo(to.X, to.Y)
	default:
		out.LineTo(to.X, to.Y)
	}
}

// edgeNormal returns the unit left normal of the edge a->b.
func edgeNormal(a, b Point) Point {
	return b.Sub(a).Normalize().Perp()
}

func reversedPoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
