package timebase

import (
	"fmt"
	"math"
)

// FrameRate is a frame rate expressed as an exact fraction of frames
// per second, e.g. 24000/1001 for 23.976.
type FrameRate struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// Common editorial rates.
var (
	Rate23976 = FrameRate{24000, 1001}
	Rate24    = FrameRate{24, 1}
	Rate25    = FrameRate{25, 1}
	Rate2997  = FrameRate{30000, 1001}
	Rate30    = FrameRate{30, 1}
	Rate50    = FrameRate{50, 1}
	Rate5994  = FrameRate{60000, 1001}
	Rate60    = FrameRate{60, 1}
)

// NewRate returns the frame rate num/den frames per second. A zero
// denominator or non-positive numerator is a caller bug and panics.
func NewRate(num, den int64) FrameRate {
	if den == 0 {
		panic("timebase: zero denominator")
	}
	if num <= 0 || den < 0 {
		panic(fmt.Sprintf("timebase: invalid frame rate %d/%d", num, den))
	}
	return FrameRate{num, den}
}

// Valid reports whether a rate decoded from external data is usable.
func (r FrameRate) Valid() bool { return r.Num > 0 && r.Den > 0 }

// FPS returns the rate as floating-point frames per second.
func (r FrameRate) FPS() float64 { return float64(r.Num) / float64(r.Den) }

// FrameDuration returns the exact duration of one frame.
func (r FrameRate) FrameDuration() RationalTime { return New(r.Den, r.Num) }

// IsNTSC reports whether the rate is a 1001-denominator NTSC rate.
func (r FrameRate) IsNTSC() bool { return r.Den == 1001 }

// Timebase returns the nominal integer rate, rounding NTSC rates up
// (29.97 -> 30).
func (r FrameRate) Timebase() int64 { return int64(math.Round(r.FPS())) }

func (r FrameRate) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d fps", r.Num)
	}
	return fmt.Sprintf("%d/%d fps", r.Num, r.Den)
}
