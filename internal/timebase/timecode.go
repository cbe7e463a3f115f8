package timebase

import "fmt"

// Timecode renders t as HH:MM:SS:FF at the given rate. NTSC rates use
// their nominal timebase for the frame digits (29.97 counts to :29).
// Negative times are prefixed with a minus sign.
func Timecode(t RationalTime, rate FrameRate) string {
	sign := ""
	if t.Sign() < 0 {
		sign = "-"
		t = t.Abs()
	}

	fps := rate.Timebase()
	totalFrames := t.Frames(rate)
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, hours, minutes, seconds, frames)
}
