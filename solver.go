package pathkit

import "math"

// Polynomial root solvers used by curve extrema, tight bounds, and
// closest-point computations.
//
// Based on the numerically careful formulations popularized by kurbo
// and Jim Blinn's "How to Solve a Cubic Equation".

// SolveQuadratic finds real roots of a*x^2 + b*x + c = 0.
// Returns roots sorted in ascending order.
//
// If a is zero or nearly zero the equation is treated as linear. In
// the fully degenerate case (all coefficients zero) a single 0 is
// returned.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		// a is zero or tiny, treat as linear.
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if b == 0 && c == 0 {
			return []float64{0}
		}
		return nil
	}

	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	switch {
	case !isFinite(arg):
		// sc1*sc1 overflowed. One root from sc1*x + x^2 = 0,
		// the other as sc0/root1.
		root1 = -sc1
	case arg < 0:
		return nil
	case arg == 0:
		return []float64{-0.5 * sc1}
	default:
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// SolveCubic finds real roots of a*x^3 + b*x^2 + c*x + d = 0.
// When a is zero or nearly zero the quadratic solver takes over.
//
// See https://momentsingraphics.de/CubicRoots.html
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1.0 / a
	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip
	if !isFinite(c0) || !isFinite(c1) || !isFinite(c2) {
		return SolveQuadratic(b, c, d)
	}

	// (d0, d1, d2) is "Delta" in the article.
	d0 := -c2*c2 + c1
	d1 := -c1*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4.0*d0*d2 - d1*d1
	// de is "Depressed.x"; Depressed.y = d0.
	de := -2.0*c2*d0 + d1

	switch {
	case disc < 0:
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	case disc == 0:
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2.0*t1 - c2}
	}

	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	ss3 := thSin * math.Sqrt(3.0)
	t := 2.0 * math.Sqrt(-d0)
	return []float64{
		t*thCos - c2,
		t*0.5*(-thCos+ss3) - c2,
		t*0.5*(-thCos-ss3) - c2,
	}
}

// solveQuadraticUnit returns roots of a*x^2 + b*x + c = 0 clamped to
// [0, 1], for parameter values on curves.
func solveQuadraticUnit(a, b, c float64) []float64 {
	return clampRootsUnit(SolveQuadratic(a, b, c))
}

// clampRootsUnit filters roots to [0, 1], snapping values within a
// small epsilon of the boundaries.
func clampRootsUnit(roots []float64) []float64 {
	if len(roots) == 0 {
		return nil
	}
	const eps = 1e-12
	out := roots[:0]
	for _, r := range roots {
		if r < -eps || r > 1+eps {
			continue
		}
		out = append(out, math.Min(math.Max(r, 0), 1))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
