package anim

import (
	"math"
	"testing"
)

func TestCubicBezier_EndpointsPinned(t *testing.T) {
	curves := []CubicBezier{
		LinearCurve,
		EaseInCurve,
		EaseOutCurve,
		EaseInOutCurve,
		{X1: -2, Y1: 5, X2: 3, Y2: -4}, // pathological control points
		{X1: 0.5, Y1: 0.5, X2: 0.5, Y2: 0.5},
	}

	for _, c := range curves {
		if got := c.Evaluate(0); got != 0 {
			t.Fatalf("Evaluate(0) on %+v = %v, want 0", c, got)
		}
		if got := c.Evaluate(1); got != 1 {
			t.Fatalf("Evaluate(1) on %+v = %v, want 1", c, got)
		}
	}
}

func TestCubicBezier_LinearIsIdentity(t *testing.T) {
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		got := LinearCurve.Evaluate(x)
		if math.Abs(got-x) > 1e-6 {
			t.Fatalf("LinearCurve.Evaluate(%v) = %v, want identity", x, got)
		}
	}
}

func TestCubicBezier_EaseInOutShape(t *testing.T) {
	// Ease-in-out starts slow, ends slow, crosses the midpoint at 0.5.
	if got := EaseInOutCurve.Evaluate(0.25); got >= 0.25 {
		t.Fatalf("ease-in-out at 0.25 = %v, want < 0.25", got)
	}
	if got := EaseInOutCurve.Evaluate(0.75); got <= 0.75 {
		t.Fatalf("ease-in-out at 0.75 = %v, want > 0.75", got)
	}
	if got := EaseInOutCurve.Evaluate(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("ease-in-out at 0.5 = %v, want 0.5", got)
	}
}

func TestCubicBezier_PathologicalCurveStaysBounded(t *testing.T) {
	c := CubicBezier{X1: -5, Y1: 0, X2: 6, Y2: 1}
	for i := 0; i <= 50; i++ {
		x := float64(i) / 50
		got := c.Evaluate(x)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("Evaluate(%v) diverged: %v", x, got)
		}
	}
}
