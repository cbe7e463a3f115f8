package timebase

// TimeRange is the half-open interval [Start, Start+Duration).
type TimeRange struct {
	Start    RationalTime `json:"start"`
	Duration RationalTime `json:"duration"`
}

func NewRange(start, duration RationalTime) TimeRange {
	return TimeRange{Start: start, Duration: duration}
}

// End returns the exclusive end of the range.
func (r TimeRange) End() RationalTime { return r.Start.Add(r.Duration) }

// Contains reports whether t falls inside the range. The end point is
// excluded.
func (r TimeRange) Contains(t RationalTime) bool {
	return r.Start.Cmp(t) <= 0 && t.Cmp(r.End()) < 0
}

// Overlaps reports whether the two ranges share any instant.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Cmp(o.End()) < 0 && o.Start.Cmp(r.End()) < 0
}

// Intersection returns the overlapping part of the two ranges, or
// false if they are disjoint.
func (r TimeRange) Intersection(o TimeRange) (TimeRange, bool) {
	start := r.Start
	if o.Start.Cmp(start) > 0 {
		start = o.Start
	}
	end := r.End()
	if o.End().Cmp(end) < 0 {
		end = o.End()
	}
	if end.Cmp(start) <= 0 {
		return TimeRange{}, false
	}
	return TimeRange{Start: start, Duration: end.Sub(start)}, true
}
