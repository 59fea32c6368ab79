package pathkit

import "math"

// Dash defines a dash pattern: alternating drawn and skipped lengths
// along a subpath, for example [5, 3] for 5 units on, 3 units off.
type Dash struct {
	// Array contains alternating dash/gap lengths. An odd-length
	// array is logically duplicated to an even-length pattern
	// (e.g. [5] dashes as [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern cycle.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are taken by absolute value. Returns nil when no
// positive length is supplied, meaning a solid line.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}
	any := false
	for _, l := range lengths {
		if l > 0 {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a copy starting at offset into the pattern.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the length of one full pattern cycle,
// including the duplication of odd-length arrays.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether the pattern actually dashes; a nil Dash
// is a solid line.
func (d *Dash) IsDashed() bool {
	if d == nil {
		return false
	}
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	arr := make([]float64, len(d.Array))
	copy(arr, d.Array)
	return &Dash{Array: arr, Offset: d.Offset}
}

// NormalizedOffset returns the offset wrapped into one pattern
// cycle.
func (d *Dash) NormalizedOffset() float64 {
	if d == nil {
		return 0
	}
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// Scale returns a copy with all lengths multiplied by factor. Dash
// lengths are user-space units, so they scale with the coordinate
// transform, per the Cairo/Skia convention.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	arr := make([]float64, len(d.Array))
	for i, l := range d.Array {
		arr[i] = l * factor
	}
	return &Dash{Array: arr, Offset: d.Offset * factor}
}

// effectiveArray returns the array with odd-length arrays
// duplicated, for pattern iteration.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// Dashed returns a copy of the shape with every subpath replaced by
// the open subpaths of its dashed rendition. Curves are flattened
// within the shape's default tolerance first, so the dashes are
// polygonal. A nil or solid pattern returns a plain clone.
func (s *Shape) Dashed(d *Dash) *Shape {
	if !d.IsDashed() || s.err != nil {
		return s.Clone()
	}
	tol := flattenTolFor(s.Bounds())
	out := NewShape()
	for _, sp := range s.subpaths {
		pts := flattenSubpath(sp, tol)
		if len(pts) < 2 {
			continue
		}
		if sp.closed {
			pts = append(pts, pts[0])
		}
		dashPolyline(out, pts, d)
	}
	return out
}

// dashPolyline walks the polyline, alternating between emitting and
// skipping runs of the pattern.
func dashPolyline(out *Shape, pts []Point, d *Dash) {
	pattern := d.effectiveArray()
	idx := 0
	remain := pattern[0]

	// Consume the starting offset.
	for skip := d.NormalizedOffset(); skip > 0; {
		if skip < remain {
			remain -= skip
			break
		}
		skip -= remain
		idx = (idx + 1) % len(pattern)
		remain = pattern[idx]
	}
	drawing := idx%2 == 0

	penDown := false
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		length := p0.Distance(p1)
		pos := 0.0
		for length-pos > remain {
			pos += remain
			cut := p0.Lerp(p1, pos/length)
			if drawing {
				if !penDown {
					out.MoveTo(p0.X, p0.Y)
				}
				out.LineTo(cut.X, cut.Y)
			}
			// Pattern boundary: flip between dash and gap.
			drawing = !drawing
			penDown = false
			if drawing {
				out.MoveTo(cut.X, cut.Y)
				penDown = true
			}
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= length - pos
		if drawing {
			if !penDown {
				out.MoveTo(p0.X, p0.Y)
				penDown = true
			}
			out.LineTo(p1.X, p1.Y)
		}
	}
}
