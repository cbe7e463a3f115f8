// Package timebase provides exact rational time values and
// frame-rate-aware conversions. Times are stored as int64 fractions of
// one second so that arithmetic and comparisons never accumulate
// floating-point drift, even at NTSC rates like 23.976 and 29.97.
package timebase

import (
	"encoding/json"
	"fmt"
	"math"
)

// RationalTime is a time instant stored as an exact signed fraction of
// one second. Values are kept normalized (positive denominator,
// reduced by gcd), so == is exact equality. The zero value is zero
// seconds.
type RationalTime struct {
	num int64
	den int64
}

// New returns the rational time num/den seconds. A zero denominator is
// a caller bug and panics.
func New(num, den int64) RationalTime {
	if den == 0 {
		panic("timebase: zero denominator")
	}
	return reduce(num, den)
}

// FromFrames returns the time occupied by a whole number of frames at
// the given rate.
func FromFrames(frames int64, rate FrameRate) RationalTime {
	return New(frames*rate.Den, rate.Num)
}

// FromSeconds converts a floating-point seconds value. The conversion
// is lossy: the value is quantized to 1/1,000,000 of a second.
func FromSeconds(s float64) RationalTime {
	return New(int64(math.Round(s*1e6)), 1_000_000)
}

// Seconds returns the time as floating-point seconds.
func (t RationalTime) Seconds() float64 {
	t = t.norm()
	return float64(t.num) / float64(t.den)
}

// Frames returns the frame index containing t at the given rate,
// computed as the floor of the exact rational product.
func (t RationalTime) Frames(rate FrameRate) int64 {
	t = t.norm()
	return floorDiv(t.num*rate.Num, t.den*rate.Den)
}

// Num returns the normalized numerator.
func (t RationalTime) Num() int64 { return t.norm().num }

// Den returns the normalized denominator.
func (t RationalTime) Den() int64 { return t.norm().den }

func (t RationalTime) Add(o RationalTime) RationalTime {
	t, o = t.norm(), o.norm()
	return reduce(t.num*o.den+o.num*t.den, t.den*o.den)
}

func (t RationalTime) Sub(o RationalTime) RationalTime {
	return t.Add(o.Neg())
}

// MulInt scales the time by an integer factor.
func (t RationalTime) MulInt(k int64) RationalTime {
	t = t.norm()
	return reduce(t.num*k, t.den)
}

// DivInt divides the time by an integer factor. A zero divisor panics.
func (t RationalTime) DivInt(k int64) RationalTime {
	if k == 0 {
		panic("timebase: division by zero")
	}
	t = t.norm()
	return reduce(t.num, t.den*k)
}

func (t RationalTime) Neg() RationalTime {
	t = t.norm()
	return RationalTime{-t.num, t.den}
}

func (t RationalTime) Abs() RationalTime {
	t = t.norm()
	if t.num < 0 {
		return RationalTime{-t.num, t.den}
	}
	return t
}

func (t RationalTime) IsZero() bool { return t.norm().num == 0 }

// Sign returns -1, 0, or 1.
func (t RationalTime) Sign() int {
	switch n := t.norm().num; {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Cmp compares two times exactly, returning -1, 0, or 1.
func (t RationalTime) Cmp(o RationalTime) int {
	t, o = t.norm(), o.norm()
	lhs := t.num * o.den
	rhs := o.num * t.den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Less reports whether t is strictly before o.
func (t RationalTime) Less(o RationalTime) bool { return t.Cmp(o) < 0 }

func (t RationalTime) String() string {
	t = t.norm()
	if t.den == 1 {
		return fmt.Sprintf("%ds", t.num)
	}
	return fmt.Sprintf("%d/%ds", t.num, t.den)
}

type rationalJSON struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

func (t RationalTime) MarshalJSON() ([]byte, error) {
	t = t.norm()
	return json.Marshal(rationalJSON{Num: t.num, Den: t.den})
}

func (t *RationalTime) UnmarshalJSON(data []byte) error {
	var r rationalJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Den == 0 {
		return fmt.Errorf("timebase: zero denominator in %q", data)
	}
	*t = reduce(r.Num, r.Den)
	return nil
}

// norm maps the uninitialized zero value onto the canonical zero time.
func (t RationalTime) norm() RationalTime {
	if t.den == 0 {
		return RationalTime{0, 1}
	}
	return t
}

func reduce(num, den int64) RationalTime {
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return RationalTime{0, 1}
	}
	g := gcd(abs64(num), den)
	return RationalTime{num / g, den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// floorDiv truncates toward negative infinity, unlike Go's /.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
