package pathkit

// Subpath is an ordered chain of segments, optionally closed into a
// loop. Alongside the segments it keeps the construction-time vertex
// list (every on-curve point the builder visited), which spline and
// stroking code consult.
//
// Bounds are cached lazily: every structural mutation clears the
// cache, and the next read rebuilds it.
type Subpath struct {
	segments []Segment
	vertices []Point
	closed   bool

	bounds      Box
	boundsValid bool
}

// Segments returns the segment chain. The returned slice is owned by
// the subpath and must not be mutated.
func (sp *Subpath) Segments() []Segment {
	return sp.segments
}

// Vertices returns the construction-time vertex list.
func (sp *Subpath) Vertices() []Point {
	return sp.vertices
}

// Closed reports whether the subpath was explicitly closed.
func (sp *Subpath) Closed() bool {
	return sp.closed
}

// IsDrawable reports whether the subpath contributes geometry.
func (sp *Subpath) IsDrawable() bool {
	return len(sp.segments) > 0
}

// StartPoint returns the first on-curve point.
func (sp *Subpath) StartPoint() Point {
	if len(sp.segments) > 0 {
		return sp.segments[0].Start()
	}
	if len(sp.vertices) > 0 {
		return sp.vertices[0]
	}
	return Point{}
}

// EndPoint returns the last on-curve point.
func (sp *Subpath) EndPoint() Point {
	if len(sp.segments) > 0 {
		return sp.segments[len(sp.segments)-1].End()
	}
	if len(sp.vertices) > 0 {
		return sp.vertices[len(sp.vertices)-1]
	}
	return Point{}
}

// append adds a nondegenerate segment and invalidates cached bounds.
func (sp *Subpath) append(s Segment) {
	sp.segments = append(sp.segments, s)
	sp.boundsValid = false
}

// addVertex records a construction-time vertex.
func (sp *Subpath) addVertex(p Point) {
	sp.vertices = append(sp.vertices, p)
}

// close marks the subpath closed and invalidates cached bounds.
func (sp *Subpath) close() {
	sp.closed = true
	sp.boundsValid = false
}

// Bounds returns the union of the segment bounds, computed lazily.
func (sp *Subpath) Bounds() Box {
	if !sp.boundsValid {
		b := EmptyBox()
		for _, s := range sp.segments {
			b = b.Union(s.Bounds())
		}
		sp.bounds = b
		sp.boundsValid = true
	}
	return sp.bounds
}

// closingSegment returns the segment that closes the loop for fill
// queries: the explicit or implicit line from the chain's end back
// to its start. ok is false when no closing segment is needed.
func (sp *Subpath) closingSegment() (Line, bool) {
	if len(sp.segments) == 0 {
		return Line{}, false
	}
	start := sp.StartPoint()
	end := sp.EndPoint()
	l := Line{P0: end, P1: start}
	if l.isDegenerate() {
		return Line{}, false
	}
	return l, true
}

// windingCrossings sums the signed ray crossings over the chain,
// including the implicit closing segment: unclosed subpaths are
// treated as conceptually filled.
func (sp *Subpath) windingCrossings(r Ray) int {
	var w int
	for _, s := range sp.segments {
		w += s.windingCrossings(r)
	}
	if l, ok := sp.closingSegment(); ok {
		w += l.windingCrossings(r)
	}
	return w
}

// rayHits appends every forward ray intersection over the chain,
// including the implicit closing segment.
func (sp *Subpath) rayHits(r Ray, hits []RayHit) []RayHit {
	for _, s := range sp.segments {
		hits = s.rayHits(r, hits)
	}
	if l, ok := sp.closingSegment(); ok {
		hits = l.rayHits(r, hits)
	}
	return hits
}

// signedArea returns the Green's-theorem area of the loop, implicit
// closing segment included.
func (sp *Subpath) signedArea() float64 {
	var area float64
	for _, s := range sp.segments {
		area += s.signedArea()
	}
	if l, ok := sp.closingSegment(); ok {
		area += l.signedArea()
	}
	return area
}

// length sums segment arc lengths. The closing segment counts only
// when the subpath is explicitly closed.
func (sp *Subpath) length(accuracy float64) float64 {
	var total float64
	for _, s := range sp.segments {
		total += s.Length(accuracy)
	}
	if sp.closed {
		if l, ok := sp.closingSegment(); ok {
			total += l.Length(accuracy)
		}
	}
	return total
}

// reverse returns a copy traversed in the opposite direction.
func (sp *Subpath) reverse() *Subpath {
	out := &Subpath{closed: sp.closed}
	for i := len(sp.segments) - 1; i >= 0; i-- {
		out.segments = append(out.segments, sp.segments[i].Reverse())
	}
	for i := len(sp.vertices) - 1; i >= 0; i-- {
		out.vertices = append(out.vertices, sp.vertices[i])
	}
	return out
}

// transform returns a transformed copy. Arcs may decompose into
// cubics when the transform is not a similarity.
func (sp *Subpath) transform(tr Transformer) *Subpath {
	out := &Subpath{closed: sp.closed}
	for _, s := range sp.segments {
		out.segments = append(out.segments, s.Transform(tr)...)
	}
	for _, v := range sp.vertices {
		out.vertices = append(out.vertices, tr.Apply(v))
	}
	return out
}

// clone returns a deep copy sharing no mutable state.
func (sp *Subpath) clone() *Subpath {
	out := &Subpath{
		segments:    make([]Segment, len(sp.segments)),
		vertices:    make([]Point, len(sp.vertices)),
		closed:      sp.closed,
		bounds:      sp.bounds,
		boundsValid: sp.boundsValid,
	}
	copy(out.segments, sp.segments)
	copy(out.vertices, sp.vertices)
	return out
}
