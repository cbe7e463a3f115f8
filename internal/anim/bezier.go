// Package anim provides keyframe animation tracks and the easing
// curves evaluated between neighboring keyframes.
package anim

import "math"

// CubicBezier is a cubic Bézier easing curve with its endpoints pinned
// at (0,0) and (1,1). X1,Y1 and X2,Y2 are the two free control points,
// matching the CSS cubic-bezier convention.
type CubicBezier struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Curve presets.
var (
	LinearCurve    = CubicBezier{0.25, 0.25, 0.75, 0.75}
	EaseInCurve    = CubicBezier{0.42, 0.0, 1.0, 1.0}
	EaseOutCurve   = CubicBezier{0.0, 0.0, 0.58, 1.0}
	EaseInOutCurve = CubicBezier{0.42, 0.0, 0.58, 1.0}
)

const (
	solveIterations = 8
	solveEpsilon    = 1e-10
	derivEpsilon    = 1e-12
)

// Evaluate returns the eased value for normalized progress t. Progress
// outside [0,1] clamps to the pinned endpoints, so Evaluate(0) == 0 and
// Evaluate(1) == 1 for any control points.
func (c CubicBezier) Evaluate(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return c.sampleY(c.solveX(t))
}

// solveX finds the curve parameter u with sampleX(u) == t by
// Newton-Raphson, clamped to [0,1] each step so pathological control
// points can never make it diverge.
func (c CubicBezier) solveX(t float64) float64 {
	u := t
	for i := 0; i < solveIterations; i++ {
		u = clamp01(u)
		residual := c.sampleX(u) - t
		if math.Abs(residual) < solveEpsilon {
			return u
		}
		deriv := c.sampleXDeriv(u)
		if math.Abs(deriv) < derivEpsilon {
			return u
		}
		u -= residual / deriv
	}
	return clamp01(u)
}

func (c CubicBezier) sampleX(u float64) float64 { return sample(u, c.X1, c.X2) }
func (c CubicBezier) sampleY(u float64) float64 { return sample(u, c.Y1, c.Y2) }

// sample evaluates the cubic with P0=0, P3=1 at parameter u.
func sample(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func (c CubicBezier) sampleXDeriv(u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*c.X1 + 6*inv*u*(c.X2-c.X1) + 3*u*u*(1-c.X2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
