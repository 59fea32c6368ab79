package pathkit

import "errors"

// Op selects a boolean combination of two filled shapes.
type Op uint8

const (
	OpUnion Op = iota
	OpIntersect
	OpDifference
	OpXor
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpDifference:
		return "difference"
	case OpXor:
		return "xor"
	default:
		return "unknown"
	}
}

// ClipOptions tunes a clip operation.
type ClipOptions struct {
	// Inverse clips to the region outside the clip shape.
	Inverse bool
}

// Combiner resolves boolean combinations of filled shapes. The
// kernel treats it as an opaque collaborator: it hands over shapes
// built from the segment primitives and receives shapes built from
// the same primitives back.
type Combiner interface {
	// Simplify resolves a shape's self-intersections into an
	// equivalent shape with nonoverlapping subpaths.
	Simplify(s *Shape) (*Shape, error)

	// Combine applies op to the filled regions of a and b.
	Combine(a, b *Shape, op Op) (*Shape, error)

	// Clip restricts shape to the region covered by clip.
	Clip(shape, clip *Shape, opts ClipOptions) (*Shape, error)
}

var errNoShapes = errors.New("pathkit: no shapes to combine")

// CombineAll folds op over shapes left to right through c.
func CombineAll(c Combiner, op Op, shapes ...*Shape) (*Shape, error) {
	if len(shapes) == 0 {
		return nil, errNoShapes
	}
	acc := shapes[0]
	for _, s := range shapes[1:] {
		var err error
		acc, err = c.Combine(acc, s, op)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// UnionAll returns the union of all shapes through c.
func UnionAll(c Combiner, shapes ...*Shape) (*Shape, error) {
	return CombineAll(c, OpUnion, shapes...)
}

// IntersectAll returns the intersection of all shapes through c.
func IntersectAll(c Combiner, shapes ...*Shape) (*Shape, error) {
	return CombineAll(c, OpIntersect, shapes...)
}

// XorAll returns the symmetric difference of all shapes through c.
func XorAll(c Combiner, shapes ...*Shape) (*Shape, error) {
	return CombineAll(c, OpXor, shapes...)
}

// Simplified returns the shape with self-intersections resolved
// through c.
func (s *Shape) Simplified(c Combiner) (*Shape, error) {
	return c.Simplify(s)
}

// Combined applies op to the filled regions of s and other through
// c.
func (s *Shape) Combined(c Combiner, other *Shape, op Op) (*Shape, error) {
	return c.Combine(s, other, op)
}

// Clipped restricts s to the region covered by clip through c.
func (s *Shape) Clipped(c Combiner, clip *Shape, opts ClipOptions) (*Shape, error) {
	return c.Clip(s, clip, opts)
}
