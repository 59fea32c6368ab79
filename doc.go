// Package pathkit is a 2D path and shape geometry kernel.
//
// # Overview
//
// pathkit models piecewise curves (lines, quadratic and cubic Bezier
// curves, circular and elliptical arcs) and answers geometric queries
// about them: point containment under the nonzero fill rule, ray
// intersection, tight bounds, signed area, arc length, closest point,
// and stroked outlines. It is independent of any display technology;
// rendering, rasterization, and boolean set combination live behind
// narrow interfaces.
//
// # Quick Start
//
//	import "github.com/pathkit/pathkit"
//
//	s := pathkit.NewShape()
//	s.MoveTo(0, 0).LineTo(10, 0).LineTo(10, 20).LineTo(0, 20).Close()
//
//	s.Bounds()                          // [0,10] x [0,20]
//	s.ContainsPoint(pathkit.Pt(5, 5))   // true
//
// # Architecture
//
// The library is organized into:
//   - Public API: Shape, Subpath, Segment variants, Point, Box, Matrix
//   - interval: a generic self-balancing overlap index used to
//     accelerate segment overlap queries
//   - External collaborators: Combiner (boolean set operations) and
//     Transformer (affine transforms), consumed through interfaces
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases with Y-down sweep
//
// # Concurrency
//
// All operations are synchronous. A Shape or interval.Tree is owned by
// one logical writer at a time; concurrent readers are safe only while
// no writer is active.
package pathkit
