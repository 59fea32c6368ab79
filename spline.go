package pathkit

// CardinalSpline appends a cardinal spline interpolating every point
// in points. The curve is emitted as one cubic per consecutive point
// pair, with control points blended from the neighboring points by
// tension: 0 yields straight lines, 0.5 the Catmull-Rom spline, and
// larger values progressively rounder curves.
//
// When closed is true the spline wraps around and the subpath is
// closed; otherwise the first and last points are duplicated so the
// curve starts and ends exactly on them.
func (s *Shape) CardinalSpline(points []Point, tension float64, closed bool) *Shape {
	coords := make([]float64, 0, len(points)*2+1)
	coords = append(coords, tension)
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	if !s.mutable("CardinalSpline", coords...) {
		return s
	}
	switch len(points) {
	case 0:
		return s
	case 1:
		s.moveTo(points[0])
		return s
	case 2:
		s.moveTo(points[0])
		s.addSegment(NewLine(points[0], points[1]))
		s.resetCursor()
		if closed {
			s.Close()
		}
		return s
	}

	s.moveTo(points[0])
	for _, c := range cardinalCubics(points, tension, closed) {
		s.addSegment(c)
	}
	s.resetCursor()
	if closed {
		s.Close()
	}
	return s
}

// cardinalCubics converts a point sequence into cubic segments, one
// per 4-point window. Each window (p0, p1, p2, p3) produces the span
// from p1 to p2 with control points offset along the chords p0->p2
// and p1->p3.
func cardinalCubics(points []Point, tension float64, closed bool) []Cubic {
	n := len(points)
	at := func(i int) Point {
		if closed {
			return points[((i%n)+n)%n]
		}
		if i < 0 {
			return points[0]
		}
		if i >= n {
			return points[n-1]
		}
		return points[i]
	}

	spans := n - 1
	if closed {
		spans = n
	}
	w := tension / 3
	cubics := make([]Cubic, 0, spans)
	for i := 0; i < spans; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		c1 := p1.Add(p2.Sub(p0).Mul(w))
		c2 := p2.Sub(p3.Sub(p1).Mul(w))
		cubics = append(cubics, NewCubic(p1, c1, c2, p2))
	}
	return cubics
}
